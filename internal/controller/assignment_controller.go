package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// parseDate accepts an ISO timestamp; anything unparseable reads as no
// due date, matching lenient client input.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	s = strings.Replace(s, "Z", "+00:00", 1)
	t, err := time.Parse("2006-01-02T15:04:05-07:00", s)
	if err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return nil
		}
	}
	return &t
}

func (c *AssignmentController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrClassNotFound):
		util.NotFound(ctx, "Class not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "Only the class owner can manage assignments")
	case errors.Is(err, util.ErrAssignmentNotFound):
		util.NotFound(ctx, "Assignment not found")
	default:
		util.LogInternalError(ctx, err)
	}
}

type CreateAssignmentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	classID, ok := uintParam(ctx, "classId")
	if !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}

	var req CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	assignment, err := c.AssignmentService.CreateAssignment(user, classID, req.Title, req.Description, parseDate(req.DueDate))
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"message":    "Assignment created",
		"assignment": assignmentView(assignment, false),
	})
}

// UpdateAssignmentRequest uses pointers so absent fields stay untouched.
type UpdateAssignmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	classID, ok := uintParam(ctx, "classId")
	if !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}
	assignmentID, ok := uintParam(ctx, "assignmentId")
	if !ok {
		util.BadRequest(ctx, "Invalid assignment id")
		return
	}

	var req UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	patch := service.AssignmentPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate != nil {
		patch.DueDateSet = true
		patch.DueDate = parseDate(*req.DueDate)
	}

	user := util.GetCurrentUser(ctx)
	assignment, err := c.AssignmentService.UpdateAssignment(user, classID, assignmentID, patch)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"message":    "Assignment updated",
		"assignment": assignmentView(assignment, false),
	})
}

func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	classID, ok := uintParam(ctx, "classId")
	if !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}
	assignmentID, ok := uintParam(ctx, "assignmentId")
	if !ok {
		util.BadRequest(ctx, "Invalid assignment id")
		return
	}

	user := util.GetCurrentUser(ctx)
	if err := c.AssignmentService.DeleteAssignment(user, classID, assignmentID); err != nil {
		c.mapError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"message": "Assignment deleted"})
}
