// Package lmstest provides an in-process fake of the LMS REST API for tests.
//
// The fake serves the endpoints uppraisal talks to (update_grades, progress,
// single submission update, paged submission listing) from a gin router behind
// an httptest server. It records every call so tests can assert on payloads,
// and exposes knobs for injecting failure statuses and job state sequences.
package lmstest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/gin-gonic/gin"
)

// APIPrefix is the path prefix of all fake endpoints.
const APIPrefix = "/api/v1"

// GradeCall records one update_grades request.
type GradeCall struct {
	CourseID      string
	AssignmentID  string
	Authorization string
	ContentType   string
	Data          lms.GradeData
}

// SubmissionCall records one single submission PUT.
type SubmissionCall struct {
	CourseID      string
	AssignmentID  string
	UserID        string
	Authorization string
	Update        lms.SubmissionUpdate
}

// Server is a fake LMS API. Exported knobs must be set before the code under
// test starts issuing requests.
type Server struct {
	*httptest.Server

	// Token, when set, is required as the bearer token on every request
	Token string

	// JobStates is the sequence of workflow states reported for every job:
	// the update_grades response reports JobStates[0], poll n reports
	// JobStates[n], and the last state repeats. Defaults to queued, completed.
	JobStates []string

	// Failure injection: a non-zero status makes the endpoint fail
	UpdateGradesStatus int
	ProgressStatus     int
	SubmissionStatus   map[string]int // keyed by user id
	ListStatus         int
	OmitJobURL         bool

	// Submissions served by the listing endpoint, PerPage per page
	Submissions []map[string]any
	PerPage     int

	mu         sync.Mutex
	gradeCalls []GradeCall
	subCalls   []SubmissionCall
	pollCounts map[int]int
	pollCalls  int
	listCalls  int
	nextJobID  int
}

// NewServer starts a fake LMS API and registers its shutdown with t.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		JobStates:        []string{"queued", "completed"},
		SubmissionStatus: map[string]int{},
		PerPage:          100,
		pollCounts:       map[int]int{},
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logging.NewLevelWriter("DEBUG", "lmstest")), gin.Recovery())

	api := router.Group(APIPrefix, s.authorize)
	api.POST("/courses/:course/assignments/:assignment/submissions/update_grades", s.handleUpdateGrades)
	api.PUT("/courses/:course/assignments/:assignment/submissions/:user", s.handleSubmission)
	api.GET("/courses/:course/assignments/:assignment/submissions", s.handleList)
	api.GET("/progress/:id", s.handleProgress)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to configure lms.Client with.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// GradeCalls returns the recorded update_grades requests.
func (s *Server) GradeCalls() []GradeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GradeCall(nil), s.gradeCalls...)
}

// SubmissionCalls returns the recorded single submission requests.
func (s *Server) SubmissionCalls() []SubmissionCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SubmissionCall(nil), s.subCalls...)
}

// PollCalls returns the number of progress requests served.
func (s *Server) PollCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pollCalls
}

// ListCalls returns the number of listing pages served.
func (s *Server) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func (s *Server) authorize(c *gin.Context) {
	if s.Token != "" && c.GetHeader("Authorization") != "Bearer "+s.Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"errors": []gin.H{{"message": "Invalid access token."}},
		})
		return
	}
	c.Next()
}

func (s *Server) stateAt(n int) string {
	if len(s.JobStates) == 0 {
		return "completed"
	}
	if n >= len(s.JobStates) {
		return s.JobStates[len(s.JobStates)-1]
	}
	return s.JobStates[n]
}

func (s *Server) job(c *gin.Context, id int, state string) gin.H {
	body := gin.H{
		"id":             id,
		"context_type":   "Course",
		"tag":            "submissions_update",
		"workflow_state": state,
		"completion":     nil,
		"message":        nil,
	}
	if !s.OmitJobURL {
		body["url"] = fmt.Sprintf("http://%s%s/progress/%d", c.Request.Host, APIPrefix, id)
	}
	if state == "completed" {
		body["completion"] = 100
	}
	return body
}

func (s *Server) handleUpdateGrades(c *gin.Context) {
	var req lms.UpdateGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gradeCalls = append(s.gradeCalls, GradeCall{
		CourseID:      c.Param("course"),
		AssignmentID:  c.Param("assignment"),
		Authorization: c.GetHeader("Authorization"),
		ContentType:   c.ContentType(),
		Data:          req.GradeData,
	})

	if s.UpdateGradesStatus != 0 {
		c.JSON(s.UpdateGradesStatus, gin.H{"errors": []gin.H{{"message": "update rejected"}}})
		return
	}

	s.nextJobID++
	c.JSON(http.StatusOK, s.job(c, s.nextJobID, s.stateAt(0)))
}

func (s *Server) handleProgress(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": []gin.H{{"message": "not found"}}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pollCalls++
	if s.ProgressStatus != 0 {
		c.JSON(s.ProgressStatus, gin.H{"errors": []gin.H{{"message": "progress unavailable"}}})
		return
	}

	s.pollCounts[id]++
	c.JSON(http.StatusOK, s.job(c, id, s.stateAt(s.pollCounts[id])))
}

func (s *Server) handleSubmission(c *gin.Context) {
	var update lms.SubmissionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := c.Param("user")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subCalls = append(s.subCalls, SubmissionCall{
		CourseID:      c.Param("course"),
		AssignmentID:  c.Param("assignment"),
		UserID:        user,
		Authorization: c.GetHeader("Authorization"),
		Update:        update,
	})

	if status := s.SubmissionStatus[user]; status != 0 {
		c.JSON(status, gin.H{"errors": []gin.H{{"message": "submission update failed"}}})
		return
	}

	userID, _ := strconv.ParseInt(user, 10, 64)
	c.JSON(http.StatusOK, gin.H{
		"user_id":        userID,
		"assignment_id":  c.Param("assignment"),
		"grade":          update.Submission.PostedGrade,
		"workflow_state": "graded",
	})
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls++
	if s.ListStatus != 0 {
		c.JSON(s.ListStatus, gin.H{"errors": []gin.H{{"message": "listing failed"}}})
		return
	}

	perPage := s.PerPage
	if perPage <= 0 {
		perPage = 100
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	lastPage := (len(s.Submissions) + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	from := (page - 1) * perPage
	to := min(from+perPage, len(s.Submissions))
	items := []map[string]any{}
	if from < to {
		items = s.Submissions[from:to]
	}

	pageURL := func(n int) string {
		return fmt.Sprintf("http://%s%s?page=%d&per_page=%d", c.Request.Host, c.Request.URL.Path, n, perPage)
	}
	link := fmt.Sprintf(`<%s>; rel="current",`, pageURL(page))
	if page < lastPage {
		link += fmt.Sprintf(`<%s>; rel="next",`, pageURL(page+1))
	}
	if page > 1 {
		link += fmt.Sprintf(`<%s>; rel="prev",`, pageURL(page-1))
	}
	link += fmt.Sprintf(`<%s>; rel="first",<%s>; rel="last"`, pageURL(1), pageURL(lastPage))
	c.Header("Link", link)

	c.JSON(http.StatusOK, items)
}
