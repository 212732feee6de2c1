package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewin_backend/internal/model"
)

// Response shaping. The class view is role-gated: the passcode and the
// full roster are only serialized for the owner.

func userView(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
	}
}

type classViewOpts struct {
	passcode    bool
	students    bool
	assignments bool
}

func classView(cls *model.Class, opts classViewOpts) gin.H {
	var ownerName interface{}
	if cls.Owner != nil {
		ownerName = cls.Owner.Name
	}

	data := gin.H{
		"id":           cls.ID,
		"name":         cls.Name,
		"subject":      cls.Subject,
		"grade":        cls.Grade,
		"description":  cls.Description,
		"ownerId":      cls.OwnerID,
		"ownerName":    ownerName,
		"studentCount": len(cls.Students),
		"createdAt":    cls.CreatedAt,
	}

	if opts.passcode {
		data["passcode"] = cls.Passcode
	}
	if opts.students {
		students := make([]gin.H, 0, len(cls.Students))
		for _, s := range cls.Students {
			students = append(students, userView(s))
		}
		data["students"] = students
	}
	if opts.assignments {
		assignments := make([]gin.H, 0, len(cls.Assignments))
		for i := range cls.Assignments {
			assignments = append(assignments, assignmentView(&cls.Assignments[i], true))
		}
		data["assignments"] = assignments
	}

	return data
}

func assignmentView(a *model.Assignment, includeSubmissions bool) gin.H {
	data := gin.H{
		"id":              a.ID,
		"title":           a.Title,
		"description":     a.Description,
		"dueDate":         a.DueDate,
		"classId":         a.ClassID,
		"submissionCount": len(a.Submissions),
		"createdAt":       a.CreatedAt,
	}

	if includeSubmissions {
		submissions := make([]gin.H, 0, len(a.Submissions))
		for i := range a.Submissions {
			submissions = append(submissions, submissionView(&a.Submissions[i], true))
		}
		data["submissions"] = submissions
	}

	return data
}

func submissionView(s *model.Submission, includeReviews bool) gin.H {
	var studentName interface{}
	if s.Student != nil {
		studentName = s.Student.Name
	}

	data := gin.H{
		"id":           s.ID,
		"content":      s.Content,
		"fileName":     s.FileName,
		"fileSize":     s.FileSize,
		"studentId":    s.StudentID,
		"studentName":  studentName,
		"assignmentId": s.AssignmentID,
		"submittedAt":  s.SubmittedAt,
		"grade":        s.Grade,
		"feedback":     s.Feedback,
		"gradedAt":     s.GradedAt,
	}

	if includeReviews {
		reviews := make([]gin.H, 0, len(s.PeerReviews))
		for i := range s.PeerReviews {
			reviews = append(reviews, peerReviewView(&s.PeerReviews[i]))
		}
		data["peerReviews"] = reviews
	}

	return data
}

func peerReviewView(r *model.PeerReview) gin.H {
	var reviewerName interface{}
	if r.Reviewer != nil {
		reviewerName = r.Reviewer.Name
	}

	return gin.H{
		"id":           r.ID,
		"content":      r.Content,
		"reviewerId":   r.ReviewerID,
		"reviewerName": reviewerName,
		"submissionId": r.SubmissionID,
		"createdAt":    r.CreatedAt,
	}
}

// uintParam parses a numeric path parameter; ok is false on garbage.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
