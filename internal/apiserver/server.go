package apiserver

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"github.com/standardbeagle/decodex/internal/search"
)

// jobSchema describes the wire shape of a submit request and a job status
// response, served from GET /schema so dashboard clients can validate
// their own requests/responses without hand-copying this file's structs.
var jobSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"submit_request": {
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"input": {Type: "string", Description: "the candidate-ciphertext string to search"},
			},
			Required: []string{"input"},
		},
		"job": {
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":         {Type: "string"},
				"input":      {Type: "string"},
				"status":     {Type: "string", Description: "pending, running, done, or failed"},
				"error":      {Type: "string"},
				"started_at": {Type: "string", Description: "RFC3339 timestamp"},
				"results": {
					Type: "array",
					Items: &jsonschema.Schema{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"text": {Type: "string"},
							"chain": {
								Type: "array",
								Items: &jsonschema.Schema{
									Type: "object",
									Properties: map[string]*jsonschema.Schema{
										"transformation": {Type: "string"},
										"input":          {Type: "string"},
										"output":         {Type: "string"},
										"key":            {Type: "string"},
										"recognizer":     {Type: "string"},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

// JobStatus is the lifecycle of one submitted search, polled over REST
// and mirrored to websocket subscribers as it progresses.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// resultView is the wire shape of a search.Result, flattening Chain into
// plain structs so json.Marshal never needs to reach into internal/types.
type resultView struct {
	Text  string     `json:"text"`
	Chain []stepView `json:"chain"`
}

type stepView struct {
	Transformation string `json:"transformation"`
	Input          string `json:"input"`
	Output         string `json:"output"`
	Key            string `json:"key,omitempty"`
	Recognizer     string `json:"recognizer,omitempty"`
}

func toResultView(r search.Result) resultView {
	steps := make([]stepView, 0, len(r.Chain))
	for _, s := range r.Chain {
		steps = append(steps, stepView{
			Transformation: s.TransformationName,
			Input:          s.InputText,
			Output:         s.OutputText,
			Key:            s.Key,
			Recognizer:     s.RecognizerName,
		})
	}
	return resultView{Text: r.Text, Chain: steps}
}

// job is one submitted search's observable state. The dashboard is
// read-only: nothing here can cancel or otherwise influence a running
// Engine.Run call — the job goroutine owns that context independently.
type job struct {
	ID        string       `json:"id"`
	Input     string       `json:"input"`
	Status    JobStatus    `json:"status"`
	Results   []resultView `json:"results"`
	Error     string       `json:"error,omitempty"`
	StartedAt time.Time    `json:"started_at"`
	Stats     search.Stats `json:"stats"`
}

// Server exposes the optional read-only dashboard (SPEC_FULL.md §4.6):
// a REST endpoint to submit an input and poll job status, and a
// websocket feed that pushes each confirmed plaintext as it lands. It
// is bolted onto the Result Sink as an observer and never owns, cancels,
// or otherwise participates in the engine's termination protocol — a
// search submitted here runs to its own deadline whether or not any
// dashboard client is still connected.
type Server struct {
	hub       *Hub
	newEngine func(mode search.Mode) *search.Engine

	mu   sync.Mutex
	jobs map[string]*job
}

// NewServer builds a dashboard server. newEngine constructs a fresh
// Engine per submitted job (ModeCollectAll is forced, since the
// dashboard's purpose is to watch every confirmation land, not just
// the first).
func NewServer(newEngine func(mode search.Mode) *search.Engine) *Server {
	return &Server{
		hub:       NewHub(),
		newEngine: newEngine,
		jobs:      make(map[string]*job),
	}
}

// Router builds the gin.Engine exposing the dashboard's REST surface
// and websocket feed, in the teacher's SetupRouter style.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/jobs", s.handleSubmit)
	r.GET("/jobs/:id", s.handleStatus)
	r.GET("/jobs", s.handleList)
	r.GET("/ws", s.hub.Subscribe)
	r.GET("/schema", s.handleSchema)

	go s.hub.Run()

	return r
}

// handleSchema serves the dashboard's request/response shapes as a JSON
// Schema document, so clients can validate without reading this file.
func (s *Server) handleSchema(c *gin.Context) {
	c.JSON(200, jobSchema)
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req struct {
		Input string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New().String()
	j := &job{
		ID:        id,
		Input:     req.Input,
		Status:    JobPending,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.jobs[id] = j
	s.mu.Unlock()

	go s.runJob(j)

	c.JSON(202, gin.H{"id": id, "status": j.Status})
}

func (s *Server) runJob(j *job) {
	s.mu.Lock()
	j.Status = JobRunning
	snapshot := *j
	s.mu.Unlock()
	s.broadcastEvent("job_started", snapshot)

	engine := s.newEngine(search.ModeCollectAll)
	results, stats, err := engine.Run(context.Background(), j.Input)

	s.mu.Lock()
	j.Stats = stats
	if err != nil {
		j.Status = JobFailed
		j.Error = err.Error()
	} else {
		j.Status = JobDone
		for _, r := range results {
			j.Results = append(j.Results, toResultView(r))
		}
	}
	snapshot = *j
	s.mu.Unlock()

	s.broadcastEvent("job_finished", snapshot)
}

func (s *Server) handleStatus(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	j, ok := s.jobs[id]
	var snapshot job
	if ok {
		snapshot = *j
	}
	s.mu.Unlock()
	if !ok {
		c.JSON(404, gin.H{"error": "no such job"})
		return
	}
	c.JSON(200, snapshot)
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	out := make([]job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, *j)
	}
	s.mu.Unlock()
	c.JSON(200, out)
}

func (s *Server) broadcastEvent(event string, snapshot job) {
	payload, err := json.Marshal(gin.H{"event": event, "job": snapshot})
	if err != nil {
		log.Printf("WARNING: dashboard failed to marshal %s event: %v", event, err)
		return
	}
	s.hub.Broadcast(payload)
}

// ClientCount exposes how many dashboard clients are connected.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}
