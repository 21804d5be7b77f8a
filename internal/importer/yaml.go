// Package importer seeds the worklist from a YAML fixture. Records go
// through the service so the usual validation and defaults apply.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Service is the part of the service layer the importer drives.
type Service interface {
	CreateProject(ctx context.Context, in service.ProjectInput) (*models.Project, error)
	ArchiveProject(ctx context.Context, id uuid.UUID, actualHours string) (*models.Project, error)
	CreateTask(ctx context.Context, in service.TaskInput) (*models.Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	CreateMilestone(ctx context.Context, in service.MilestoneInput) (*models.Milestone, error)
	CompleteMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error)
	CreateStatusUpdate(ctx context.Context, in service.StatusUpdateInput) (*models.StatusUpdate, error)
}

type YAMLTask struct {
	TargetType  string `yaml:"target_type,omitempty"`
	TargetName  string `yaml:"target_name"`
	DueDate     string `yaml:"due_date"`
	Description string `yaml:"description,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	Completed   bool   `yaml:"completed,omitempty"`
}

type YAMLMilestone struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Date        string `yaml:"date"`
	Completed   bool   `yaml:"completed,omitempty"`
}

type YAMLProject struct {
	ClientName        string          `yaml:"client_name"`
	ProjectName       string          `yaml:"project_name"`
	MatterNumber      string          `yaml:"matter_number,omitempty"`
	ClientNumber      string          `yaml:"client_number,omitempty"`
	Assigner          string          `yaml:"assigner,omitempty"`
	AssignedAttorneys string          `yaml:"assigned_attorneys,omitempty"`
	Priority          string          `yaml:"priority,omitempty"`
	EstimatedHours    string          `yaml:"estimated_hours,omitempty"`
	ActualHours       string          `yaml:"actual_hours,omitempty"`
	Archived          bool            `yaml:"archived,omitempty"`
	Tasks             []YAMLTask      `yaml:"tasks,omitempty"`
	Milestones        []YAMLMilestone `yaml:"milestones,omitempty"`
	// Updates are applied oldest first.
	Updates []string `yaml:"updates,omitempty"`
}

type YAMLInput struct {
	Projects []YAMLProject `yaml:"projects"`
}

// Result counts what was created.
type Result struct {
	Projects      int
	Tasks         int
	Milestones    int
	StatusUpdates int
}

func (r Result) String() string {
	return fmt.Sprintf("%d projects, %d tasks, %d milestones, %d status updates",
		r.Projects, r.Tasks, r.Milestones, r.StatusUpdates)
}

var ErrEmpty = errors.New("no projects found in YAML")

func ImportFile(ctx context.Context, svc Service, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()
	return Import(ctx, svc, f)
}

// Import creates every project in the document. It stops at the first
// rejected record; what was created before stays.
func Import(ctx context.Context, svc Service, r io.Reader) (Result, error) {
	var input YAMLInput
	if err := yaml.NewDecoder(r).Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, ErrEmpty
		}
		return Result{}, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(input.Projects) == 0 {
		return Result{}, ErrEmpty
	}

	var res Result
	for i, yp := range input.Projects {
		if err := importProject(ctx, svc, yp, &res); err != nil {
			return res, fmt.Errorf("project %d (%q): %w", i+1, yp.ProjectName, err)
		}
	}

	logger.Info("Service: fixture imported",
		zap.Int("projects", res.Projects),
		zap.Int("tasks", res.Tasks),
		zap.Int("milestones", res.Milestones),
		zap.Int("status_updates", res.StatusUpdates))
	return res, nil
}

func importProject(ctx context.Context, svc Service, yp YAMLProject, res *Result) error {
	p, err := svc.CreateProject(ctx, service.ProjectInput{
		ClientName:        yp.ClientName,
		ProjectName:       yp.ProjectName,
		MatterNumber:      yp.MatterNumber,
		ClientNumber:      yp.ClientNumber,
		Assigner:          yp.Assigner,
		AssignedAttorneys: yp.AssignedAttorneys,
		Priority:          yp.Priority,
		EstimatedHours:    yp.EstimatedHours,
		ActualHours:       yp.ActualHours,
	})
	if err != nil {
		return err
	}
	res.Projects++
	projectID := p.ID.String()

	for _, yt := range yp.Tasks {
		t, err := svc.CreateTask(ctx, service.TaskInput{
			ProjectID:   projectID,
			TargetType:  yt.TargetType,
			TargetName:  yt.TargetName,
			DueDate:     yt.DueDate,
			Description: yt.Description,
			Priority:    yt.Priority,
		})
		if err != nil {
			return fmt.Errorf("task %q: %w", yt.TargetName, err)
		}
		res.Tasks++
		if yt.Completed {
			if _, err := svc.CompleteTask(ctx, t.ID); err != nil {
				return fmt.Errorf("completing task %q: %w", yt.TargetName, err)
			}
		}
	}

	for _, ym := range yp.Milestones {
		m, err := svc.CreateMilestone(ctx, service.MilestoneInput{
			ProjectID:   projectID,
			Name:        ym.Name,
			Description: ym.Description,
			Date:        ym.Date,
		})
		if err != nil {
			return fmt.Errorf("milestone %q: %w", ym.Name, err)
		}
		res.Milestones++
		if ym.Completed {
			if _, err := svc.CompleteMilestone(ctx, m.ID); err != nil {
				return fmt.Errorf("completing milestone %q: %w", ym.Name, err)
			}
		}
	}

	for _, notes := range yp.Updates {
		if _, err := svc.CreateStatusUpdate(ctx, service.StatusUpdateInput{ProjectID: projectID, Notes: notes}); err != nil {
			return fmt.Errorf("status update: %w", err)
		}
		res.StatusUpdates++
	}

	// archive last: children cannot be added to an archived project
	if yp.Archived {
		if _, err := svc.ArchiveProject(ctx, p.ID, ""); err != nil {
			return fmt.Errorf("archiving: %w", err)
		}
	}
	return nil
}
