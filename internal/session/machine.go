// Package session orchestrates one search lifecycle: it drives the curation
// resolver, dispatches image synthesis when the cascade came up empty, and
// keeps the museum-to-artifact navigation anchor.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/openmuseum/curator/internal/curation"
	"github.com/openmuseum/curator/internal/models"
	"github.com/openmuseum/curator/internal/synthesis"
)

// Phase is the lifecycle state of the current search.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// syntheticImageSource labels images produced by the generator rather than
// found in an archive.
const syntheticImageSource = "AI Reconstruction"

// Resolver is the curation pipeline the machine drives. Satisfied by
// *curation.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*models.CurationResult, error)
}

// State is the externally visible session state. Snapshots are deep copies;
// consumers never see the machine's live record.
type State struct {
	Phase               Phase                  `json:"phase"`
	Result              *models.CurationResult `json:"result,omitempty"`
	PrimaryImagePending bool                   `json:"primaryImagePending"`
	ErrorMessage        string                 `json:"errorMessage,omitempty"`
	LastQuery           string                 `json:"lastQuery,omitempty"`
	NavigationContext   *models.MuseumRecord   `json:"navigationContext,omitempty"`
}

// Machine is the single mutable root of a session. All mutations happen
// under the mutex; asynchronous image continuations re-check the search
// sequence before writing, so a continuation whose search has been
// superseded is a silent no-op. In-flight service calls are never aborted,
// only their results discarded.
type Machine struct {
	resolver  Resolver
	generator synthesis.Generator

	mu    sync.Mutex
	seq   uint64
	state State
	tasks sync.WaitGroup
}

// New returns a machine in the Idle phase.
func New(resolver Resolver, generator synthesis.Generator) *Machine {
	return &Machine{
		resolver:  resolver,
		generator: generator,
		state:     State{Phase: PhaseIdle},
	}
}

// Snapshot returns a deep copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() State {
	out := m.state
	out.Result = m.state.Result.Clone()
	out.NavigationContext = m.state.NavigationContext.Clone()
	return out
}

// Wait blocks until every in-flight image task has completed. Used by the
// one-shot CLI; the HTTP surface polls snapshots instead.
func (m *Machine) Wait() {
	m.tasks.Wait()
}

// Search runs one full search issued directly by the user. Any navigation
// anchor from a previous drill-down is cleared.
func (m *Machine) Search(ctx context.Context, query string) State {
	return m.search(ctx, query, nil)
}

// DrillIntoTreasure searches for one of the current museum's treasures,
// keeping the museum as the navigation anchor so the user can come back.
func (m *Machine) DrillIntoTreasure(ctx context.Context, name string) (State, error) {
	m.mu.Lock()
	if m.state.Result == nil || m.state.Result.Kind != models.KindMuseum {
		m.mu.Unlock()
		return m.Snapshot(), fmt.Errorf("no museum result to drill into")
	}
	via := m.state.Result.Museum.Clone()
	m.mu.Unlock()

	return m.search(ctx, name, via), nil
}

func (m *Machine) search(ctx context.Context, query string, via *models.MuseumRecord) State {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state = State{
		Phase:             PhaseLoading,
		LastQuery:         query,
		NavigationContext: via,
	}
	m.mu.Unlock()

	result, err := m.resolver.Resolve(ctx, query)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		slog.Debug("Discarding superseded curation result", "query", query)
		return m.snapshotLocked()
	}

	if err != nil {
		slog.Error("Curation failed", "query", query, "error", err)
		m.state.Phase = PhaseError
		m.state.ErrorMessage = curation.UserMessage(err)
		return m.snapshotLocked()
	}

	m.state.Phase = PhaseSuccess
	m.state.Result = result

	// The textual record is committed before synthesis is even considered;
	// only an artifact with an unresolved image needs a hero shot.
	if result.Kind == models.KindArtifact && result.Artifact.ImageURL == "" {
		m.state.PrimaryImagePending = true
		prompt := heroPrompt(result.Artifact)
		m.tasks.Add(1)
		// The task outlives the caller (an HTTP request, typically); detach
		// its lifetime from the request context.
		go m.generateHero(context.WithoutCancel(ctx), seq, prompt)
	}

	return m.snapshotLocked()
}

// generateHero fills in the artifact's primary image after the record is
// already on screen. A failed generation leaves the slot empty; it is never
// an error state.
func (m *Machine) generateHero(ctx context.Context, seq uint64, prompt string) {
	defer m.tasks.Done()

	uri, ok := m.generator.Generate(ctx, prompt)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		slog.Debug("Discarding stale hero image")
		return
	}

	m.state.PrimaryImagePending = false
	if !ok {
		return
	}
	if m.state.Result == nil || m.state.Result.Kind != models.KindArtifact {
		return
	}
	m.state.Result.Artifact.ImageURL = uri
	m.state.Result.Artifact.ImageSource = syntheticImageSource
}

// heroPrompt picks the front-facing angle's prompt when the narration
// provided one, else derives a prompt from the record itself.
func heroPrompt(artifact *models.ArtifactRecord) string {
	for _, angle := range artifact.Angles {
		if strings.Contains(strings.ToLower(angle.Angle), "front") && angle.Prompt != "" {
			return angle.Prompt
		}
	}
	return fmt.Sprintf("High quality museum photography of %s, %s, black background, studio lighting",
		artifact.StandardName, artifact.Material)
}

// RegenerateAngle re-synthesizes the image for one viewing angle. The slot's
// generating flag is set before this returns, ahead of the asynchronous
// completion. Regenerating different indices concurrently is independent;
// re-requesting the same index before the previous call lands is not guarded
// and the last completion wins.
func (m *Machine) RegenerateAngle(ctx context.Context, index int) (State, error) {
	m.mu.Lock()
	if m.state.Phase != PhaseSuccess || m.state.Result == nil || m.state.Result.Kind != models.KindArtifact {
		m.mu.Unlock()
		return m.Snapshot(), fmt.Errorf("no artifact result to regenerate")
	}

	artifact := m.state.Result.Artifact
	if index < 0 || index >= len(artifact.Angles) {
		m.mu.Unlock()
		return m.Snapshot(), fmt.Errorf("angle index %d out of range", index)
	}

	artifact.Angles[index].Generating = true
	prompt := artifact.Angles[index].Prompt
	seq := m.seq
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.tasks.Add(1)
	go m.regenerateAngle(context.WithoutCancel(ctx), seq, index, prompt)
	return snap, nil
}

func (m *Machine) regenerateAngle(ctx context.Context, seq uint64, index int, prompt string) {
	defer m.tasks.Done()

	uri, ok := m.generator.Generate(ctx, prompt)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		slog.Debug("Discarding stale angle image", "index", index)
		return
	}
	if m.state.Result == nil || m.state.Result.Kind != models.KindArtifact {
		return
	}
	artifact := m.state.Result.Artifact
	if index >= len(artifact.Angles) {
		return
	}

	// Only this slot is touched; concurrent tasks on other indices cannot
	// interfere.
	slot := &artifact.Angles[index]
	if ok {
		slot.ImageURL = uri
	}
	slot.Generating = false
}

// GoBackToMuseum restores the museum the current artifact was reached from.
// The anchor is kept so the user can drill forward and back repeatedly.
func (m *Machine) GoBackToMuseum() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.NavigationContext == nil {
		return m.snapshotLocked(), fmt.Errorf("no museum to return to")
	}

	// Abandon any artifact image tasks still in flight; their completions
	// must not patch the restored museum view.
	m.seq++
	m.state.Phase = PhaseSuccess
	m.state.Result = &models.CurationResult{
		Kind:   models.KindMuseum,
		Museum: m.state.NavigationContext.Clone(),
	}
	m.state.PrimaryImagePending = false
	m.state.ErrorMessage = ""
	return m.snapshotLocked(), nil
}

// Clear resets the session to Idle for a fresh start.
func (m *Machine) Clear() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = State{Phase: PhaseIdle}
	return m.snapshotLocked()
}
