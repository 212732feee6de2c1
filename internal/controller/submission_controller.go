package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// chainParams pulls the class/assignment/submission ids off the nested
// route; which of the three are expected depends on the endpoint.
func chainParams(ctx *gin.Context, withSubmission bool) (classID, assignmentID, submissionID uint, ok bool) {
	if classID, ok = uintParam(ctx, "classId"); !ok {
		util.BadRequest(ctx, "Invalid class id")
		return
	}
	if assignmentID, ok = uintParam(ctx, "assignmentId"); !ok {
		util.BadRequest(ctx, "Invalid assignment id")
		return
	}
	if withSubmission {
		if submissionID, ok = uintParam(ctx, "submissionId"); !ok {
			util.BadRequest(ctx, "Invalid submission id")
			return
		}
	}
	return classID, assignmentID, submissionID, true
}

type CreateSubmissionRequest struct {
	Content  string `json:"content"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

func (c *SubmissionController) CreateSubmission(ctx *gin.Context) {
	classID, assignmentID, _, ok := chainParams(ctx, false)
	if !ok {
		return
	}

	var req CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	submission, err := c.SubmissionService.CreateSubmission(user, classID, assignmentID, req.Content, req.FileName, req.FileSize)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "Not enrolled in this class")
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx, "Assignment not found")
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "Already submitted. Use PUT to edit.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(201, gin.H{
		"message":    "Submission created",
		"submission": submissionView(submission, false),
	})
}

type UpdateSubmissionRequest struct {
	Content  *string `json:"content"`
	FileName *string `json:"fileName"`
	FileSize *int64  `json:"fileSize"`
}

func (c *SubmissionController) UpdateSubmission(ctx *gin.Context) {
	classID, assignmentID, submissionID, ok := chainParams(ctx, true)
	if !ok {
		return
	}

	var req UpdateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	submission, err := c.SubmissionService.UpdateSubmission(user, classID, assignmentID, submissionID, service.SubmissionPatch{
		Content:  req.Content,
		FileName: req.FileName,
		FileSize: req.FileSize,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, "Submission not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "Cannot edit another student's submission")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{
		"message":    "Submission updated",
		"submission": submissionView(submission, false),
	})
}

func (c *SubmissionController) DeleteSubmission(ctx *gin.Context) {
	classID, assignmentID, submissionID, ok := chainParams(ctx, true)
	if !ok {
		return
	}

	user := util.GetCurrentUser(ctx)
	if err := c.SubmissionService.DeleteSubmission(user, classID, assignmentID, submissionID); err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, "Submission not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "Cannot withdraw another student's submission")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{"message": "Submission withdrawn"})
}

type GradeSubmissionRequest struct {
	Grade    string `json:"grade" binding:"required"`
	Feedback string `json:"feedback"`
}

func (c *SubmissionController) GradeSubmission(ctx *gin.Context) {
	classID, assignmentID, submissionID, ok := chainParams(ctx, true)
	if !ok {
		return
	}

	var req GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	submission, err := c.SubmissionService.GradeSubmission(user, classID, assignmentID, submissionID, req.Grade, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "Only the class owner can grade submissions")
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, "Submission not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(200, gin.H{
		"message":    "Submission graded",
		"submission": submissionView(submission, false),
	})
}
