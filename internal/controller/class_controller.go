package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

type CreateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

// CreateClass makes a classroom with a freshly generated passcode. The
// passcode comes back in the response so the teacher can share it.
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	class, err := c.ClassService.CreateClass(user, req.Name, req.Subject, req.Grade, req.Description)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"message": "Class created successfully",
		"class":   classView(class, classViewOpts{passcode: true}),
	})
}

// ListClasses serves the dashboard. Owners get the passcode, roster and
// assignments on every class; students get assignments only.
func (c *ClassController) ListClasses(ctx *gin.Context) {
	user := util.GetCurrentUser(ctx)
	roleFilter := ctx.Query("role")
	if roleFilter == "" {
		roleFilter = string(user.Role)
	}

	classes, err := c.ClassService.ListClasses(user, roleFilter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	opts := classViewOpts{assignments: true}
	if roleFilter == string(model.RoleTeacher) {
		opts.passcode = true
		opts.students = true
	}

	views := make([]gin.H, 0, len(classes))
	for i := range classes {
		views = append(views, classView(&classes[i], opts))
	}

	ctx.JSON(200, gin.H{"classes": views})
}

func (c *ClassController) GetClass(ctx *gin.Context) {
	classID, ok := uintParam(ctx, "classId")
	if !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}

	user := util.GetCurrentUser(ctx)
	class, isOwner, err := c.ClassService.GetClass(user, classID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "Access denied")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{
		"class": classView(class, classViewOpts{
			passcode:    isOwner,
			students:    isOwner,
			assignments: true,
		}),
	})
}

func (c *ClassController) DeleteClass(ctx *gin.Context) {
	classID, ok := uintParam(ctx, "classId")
	if !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}

	user := util.GetCurrentUser(ctx)
	if err := c.ClassService.DeleteClass(user, classID); err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "Only the class owner can delete it")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{"message": "Class deleted successfully"})
}

type JoinClassRequest struct {
	ClassID  uint   `json:"classId" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

func (c *ClassController) JoinClass(ctx *gin.Context) {
	var req JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	class, err := c.ClassService.JoinClass(user, req.ClassID, req.Passcode)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrInvalidPasscode):
			util.Unauthorized(ctx, "Invalid passcode")
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, "Already enrolled in this class")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{
		"message": "Joined class successfully",
		"class":   classView(class, classViewOpts{}),
	})
}

func (c *ClassController) LeaveClass(ctx *gin.Context) {
	classID, ok := uintParam(ctx, "classId")
	if !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}

	user := util.GetCurrentUser(ctx)
	if err := c.ClassService.LeaveClass(user, classID); err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrNotEnrolled):
			util.BadRequest(ctx, "Not enrolled in this class")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{"message": "Left class successfully"})
}
