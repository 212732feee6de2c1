package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
)

type PeerReviewController struct {
	ReviewService *service.PeerReviewService
}

func NewPeerReviewController(reviewService *service.PeerReviewService) *PeerReviewController {
	return &PeerReviewController{ReviewService: reviewService}
}

type CreatePeerReviewRequest struct {
	Content string `json:"content" binding:"required"`
}

func (c *PeerReviewController) CreatePeerReview(ctx *gin.Context) {
	classID, assignmentID, submissionID, ok := chainParams(ctx, true)
	if !ok {
		return
	}

	var req CreatePeerReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetCurrentUser(ctx)
	review, err := c.ReviewService.CreateReview(user, classID, assignmentID, submissionID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "Class not found")
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "Not enrolled in this class")
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, "Submission not found")
		case errors.Is(err, util.ErrSelfReview):
			util.BadRequest(ctx, "Cannot review your own submission")
		case errors.Is(err, util.ErrAlreadyReviewed):
			util.Conflict(ctx, "You have already reviewed this submission")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(201, gin.H{
		"message":    "Peer review submitted",
		"peerReview": peerReviewView(review),
	})
}

// ListPendingReviews returns every classmate submission the student can
// still review, across all enrolled classes.
func (c *PeerReviewController) ListPendingReviews(ctx *gin.Context) {
	user := util.GetCurrentUser(ctx)

	pending, err := c.ReviewService.ListPendingReviews(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(pending))
	for i := range pending {
		p := &pending[i]
		items = append(items, gin.H{
			"class": gin.H{
				"id":   p.Class.ID,
				"name": p.Class.Name,
			},
			"assignment": gin.H{
				"id":    p.Assignment.ID,
				"title": p.Assignment.Title,
			},
			"submission": submissionView(&p.Submission, false),
		})
	}

	ctx.JSON(200, gin.H{"pending": items})
}
