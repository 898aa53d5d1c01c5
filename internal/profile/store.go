// Package profile keeps the set of named task lists and the active
// selection, persisting both on every change.
package profile

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/model"
)

const (
	ProfilesKey    = "profiles"
	ActiveKey      = "activeProfile"
	LegacyTasksKey = "tasks"
)

type Options struct {
	IDs    *model.IDSource
	Logger *log.Logger
}

// Store is not safe for concurrent use; the UI loop owns it.
type Store struct {
	adapter  *kv.Adapter
	ids      *model.IDSource
	logger   *log.Logger
	profiles []model.Profile
	active   string
}

// Open loads persisted state. It never fails: missing or malformed data
// yields the default profile set.
func Open(ctx context.Context, adapter *kv.Adapter, opts Options) *Store {
	s := &Store{adapter: adapter, ids: opts.IDs, logger: opts.Logger}
	if s.ids == nil {
		s.ids = model.NewIDSource()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	var profiles []model.Profile
	_, present, err := s.adapter.Store().Get(ctx, ProfilesKey)
	if err != nil {
		s.logger.Warn("read profiles", "err", err)
	}
	if present {
		s.adapter.ReadJSON(ctx, ProfilesKey, &profiles)
	} else {
		profiles = s.importLegacy(ctx)
	}
	s.profiles = sanitize(profiles)

	var active string
	raw, ok, err := s.adapter.Store().Get(ctx, ActiveKey)
	if err != nil {
		s.logger.Warn("read active profile", "err", err)
	}
	if ok {
		active = DecodeActive(raw)
	}
	if s.indexOf(active) < 0 {
		active = s.profiles[0].ID
	}
	s.active = active
}

// importLegacy seeds the default profile from the single-list tasks key
// written before profiles existed.
func (s *Store) importLegacy(ctx context.Context) []model.Profile {
	var tasks []model.Task
	if !s.adapter.ReadJSON(ctx, LegacyTasksKey, &tasks) || len(tasks) == 0 {
		return nil
	}
	profiles := model.DefaultProfiles()
	profiles[0].Tasks = tasks
	s.logger.Info("imported legacy task list", "tasks", len(tasks))
	return profiles
}

// sanitize drops profiles without an id, later duplicates and blank
// tasks, and falls back to the default set when nothing usable remains.
func sanitize(in []model.Profile) []model.Profile {
	out := make([]model.Profile, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, p := range in {
		if strings.TrimSpace(p.ID) == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		tasks := make([]model.Task, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			if t.Validate() == nil {
				tasks = append(tasks, t)
			}
		}
		p.Tasks = tasks
		out = append(out, p)
	}
	if len(out) == 0 {
		return model.DefaultProfiles()
	}
	return out
}

// Reload re-reads both keys, used after another process wrote them.
func (s *Store) Reload(ctx context.Context) {
	s.load(ctx)
}

func (s *Store) Profiles() []model.Profile {
	out := make([]model.Profile, len(s.profiles))
	for i, p := range s.profiles {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) ActiveID() string {
	return s.active
}

func (s *Store) Active() model.Profile {
	idx := s.indexOf(s.active)
	if idx < 0 {
		return s.profiles[0].Clone()
	}
	return s.profiles[idx].Clone()
}

func (s *Store) Get(id string) (model.Profile, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Profile{}, false
	}
	return s.profiles[idx].Clone(), true
}

// Resolve finds a profile by id, then by case-insensitive name.
func (s *Store) Resolve(ref string) (model.Profile, bool) {
	if p, ok := s.Get(ref); ok {
		return p, true
	}
	ref = strings.TrimSpace(ref)
	for _, p := range s.profiles {
		if strings.EqualFold(p.Name, ref) {
			return p.Clone(), true
		}
	}
	return model.Profile{}, false
}

// CreateProfile appends a new empty profile and makes it active. A blank
// name is ignored.
func (s *Store) CreateProfile(ctx context.Context, name string) (model.Profile, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, false, nil
	}
	p := model.Profile{ID: s.newProfileID(), Name: name, Tasks: []model.Task{}}
	next := append(s.Profiles(), p)
	if err := s.commit(ctx, next, p.ID); err != nil {
		if s.indexOf(p.ID) < 0 {
			return model.Profile{}, false, err
		}
		return p.Clone(), true, err
	}
	s.logger.Info("profile created", "id", p.ID, "name", p.Name)
	return p.Clone(), true, nil
}

// DeleteProfile removes a profile unless it is the last one. Removing the
// active profile moves the selection to the first remaining profile.
func (s *Store) DeleteProfile(ctx context.Context, id string) (bool, error) {
	if len(s.profiles) <= 1 {
		return false, nil
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := make([]model.Profile, 0, len(s.profiles)-1)
	next = append(next, s.profiles[:idx]...)
	next = append(next, s.profiles[idx+1:]...)

	active := s.active
	if active == id {
		active = next[0].ID
	}
	if err := s.commit(ctx, next, active); err != nil {
		return s.indexOf(id) < 0, err
	}
	s.logger.Info("profile deleted", "id", id, "active", s.active)
	return true, nil
}

// SwitchActive selects an existing profile. Unknown ids are rejected.
func (s *Store) SwitchActive(ctx context.Context, id string) (bool, error) {
	if s.indexOf(id) < 0 {
		s.logger.Debug("rejected switch to unknown profile", "id", id)
		return false, nil
	}
	if s.active == id {
		return false, nil
	}
	if err := s.commit(ctx, s.profiles, id); err != nil {
		return s.active == id, err
	}
	return true, nil
}

func (s *Store) RenameProfile(ctx context.Context, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	idx := s.indexOf(id)
	if name == "" || idx < 0 {
		return false, nil
	}
	if s.profiles[idx].Name == name {
		return false, nil
	}
	next := s.Profiles()
	next[idx].Name = name
	if err := s.commit(ctx, next, s.active); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateTasks replaces the task list of one profile.
func (s *Store) UpdateTasks(ctx context.Context, id string, tasks []model.Task) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	next := s.Profiles()
	next[idx].Tasks = model.CloneTasks(tasks)
	if err := s.commit(ctx, next, s.active); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) AddTask(ctx context.Context, text string) (model.Task, bool, error) {
	tasks, task, changed := model.AddTask(s.Active().Tasks, text, s.ids)
	if !changed {
		return model.Task{}, false, nil
	}
	if _, err := s.UpdateTasks(ctx, s.active, tasks); err != nil {
		return model.Task{}, false, err
	}
	return task, true, nil
}

func (s *Store) ToggleTask(ctx context.Context, id int64) (bool, error) {
	tasks, changed := model.ToggleTask(s.Active().Tasks, id)
	if !changed {
		return false, nil
	}
	return s.UpdateTasks(ctx, s.active, tasks)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	tasks, changed := model.DeleteTask(s.Active().Tasks, id)
	if !changed {
		return false, nil
	}
	return s.UpdateTasks(ctx, s.active, tasks)
}

func (s *Store) ClearTasks(ctx context.Context) (bool, error) {
	return s.UpdateTasks(ctx, s.active, model.ClearTasks())
}

func (s *Store) indexOf(id string) int {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) newProfileID() string {
	id := strconv.FormatInt(s.ids.Next(), 10)
	for s.indexOf(id) >= 0 {
		id = strconv.FormatInt(s.ids.Next(), 10)
	}
	return id
}

// commit writes profiles, then the selection when it changed, and only
// then adopts them in memory. The two writes are independent: when the
// second one fails the stored selection is the old one, and memory follows
// what a reopen would load from it.
func (s *Store) commit(ctx context.Context, profiles []model.Profile, active string) error {
	if err := s.adapter.WriteJSON(ctx, ProfilesKey, profiles); err != nil {
		return err
	}
	prev := s.active
	s.profiles = profiles
	if active == prev {
		return nil
	}
	if err := s.adapter.Store().Set(ctx, ActiveKey, active); err != nil {
		if s.indexOf(prev) < 0 {
			prev = s.profiles[0].ID
		}
		s.active = prev
		return err
	}
	s.active = active
	return nil
}

// DecodeActive reads a stored selection. The stored form is the bare id;
// a JSON-quoted id is unquoted.
func DecodeActive(raw string) string {
	var quoted string
	if err := json.Unmarshal([]byte(raw), &quoted); err == nil {
		return strings.TrimSpace(quoted)
	}
	return strings.TrimSpace(raw)
}
