package engine

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// DiffActionType is the action verb of one JSON-diff entry (spec §4.11).
type DiffActionType string

const (
	DiffInsert DiffActionType = "insert"
	DiffUpdate DiffActionType = "update"
	DiffDelete DiffActionType = "delete"
)

// DiffAction is one entry of the array the host pushes via applyJsonDiff.
// Key segments are either a bare string (object field) or a map with an
// "id" entry (array-of-entities selector); encoding/json decodes both
// shapes into Key's elements without help since Key is []interface{}.
type DiffAction struct {
	Type  DiffActionType `json:"type"`
	Key   []interface{}  `json:"key"`
	Value interface{}    `json:"value"`
}

// slot is a settable/gettable/deletable handle onto one addressable
// location of the generic project tree (spec §4.11).
type slot struct {
	get func() interface{}
	set func(v interface{})
	del func()
}

type containerHandle struct {
	value  interface{}
	setter func(interface{})
}

// childSlot resolves key against h.value, which is either a
// map[string]interface{} (string key) or an []interface{} of
// map[string]interface{} entities (an {"id":...} selector key).
func childSlot(h containerHandle, key interface{}) slot {
	switch k := key.(type) {
	case string:
		m, _ := h.value.(map[string]interface{})
		return slot{
			get: func() interface{} {
				if m == nil {
					return nil
				}
				return m[k]
			},
			set: func(v interface{}) {
				if m != nil {
					m[k] = v
				}
			},
			del: func() {
				if m != nil {
					delete(m, k)
				}
			},
		}
	case map[string]interface{}:
		arr, _ := h.value.([]interface{})
		id := k["id"]
		idx := -1
		for i, item := range arr {
			if im, ok := item.(map[string]interface{}); ok && im["id"] == id {
				idx = i
				break
			}
		}
		return slot{
			get: func() interface{} {
				if idx < 0 {
					return nil
				}
				return arr[idx]
			},
			set: func(v interface{}) {
				if idx < 0 {
					h.setter(append(arr, v))
					return
				}
				arr[idx] = v
				h.setter(arr)
			},
			del: func() {
				if idx < 0 {
					return
				}
				out := append(append([]interface{}{}, arr[:idx]...), arr[idx+1:]...)
				h.setter(out)
			},
		}
	}
	return slot{}
}

// walk resolves the full key path against root, returning the slot for its
// last segment.
func walk(root map[string]interface{}, path []interface{}) slot {
	h := containerHandle{value: root, setter: func(interface{}) {}}
	for i, key := range path {
		s := childSlot(h, key)
		if i == len(path)-1 {
			return s
		}
		h = containerHandle{value: s.get(), setter: s.set}
	}
	return slot{}
}

// ApplyJSONDiff implements spec §4.11/§6.1 applyJsonDiff: walks the generic
// JSON tree of the replica, applies every action, re-marshals into the
// typed Project, then re-sorts clips/transitions/layers and re-indexes
// layer y-values (spec §4.11's "after each action" pass, applied once after
// the whole batch since the typed model has no cheaper incremental path).
func (e *Engine) ApplyJSONDiff(actions []DiffAction) error {
	raw, err := json.Marshal(e.project)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("unmarshal project tree: %w", err)
	}

	for _, action := range actions {
		applyDiffAction(tree, action)
	}

	out, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshal patched tree: %w", err)
	}
	var next domain.Project
	if err := json.Unmarshal(out, &next); err != nil {
		return fmt.Errorf("unmarshal patched project: %w", err)
	}

	e.project = &next
	e.resortAndReindex()
	e.kfCache = make(map[string]kfCacheEntry)
	return nil
}

func applyDiffAction(tree map[string]interface{}, action DiffAction) {
	if len(action.Key) == 0 {
		return
	}
	s := walk(tree, action.Key)

	switch action.Type {
	case DiffInsert:
		if arr, ok := s.get().([]interface{}); ok {
			s.set(append(arr, action.Value))
		} else {
			s.set(action.Value)
		}
	case DiffUpdate:
		target := s.get()
		if tm, ok := target.(map[string]interface{}); ok {
			if vm, ok := action.Value.(map[string]interface{}); ok {
				for k, v := range vm {
					tm[k] = v
				}
				return
			}
		}
		s.set(action.Value)
	case DiffDelete:
		s.del()
	}
}

// resortAndReindex re-sorts clips/transitions by position, layers by
// number, and re-indexes every layer's display-only y (spec §4.11).
func (e *Engine) resortAndReindex() {
	slices.SortFunc(e.project.Clips, func(a, b *domain.Clip) int {
		return cmpFloat(a.Position, b.Position)
	})
	slices.SortFunc(e.project.Effects, func(a, b *domain.Transition) int {
		return cmpFloat(a.Position, b.Position)
	})
	slices.SortFunc(e.project.Layers, func(a, b domain.Layer) int {
		return a.Number - b.Number
	})

	y := 0
	for i := range e.project.Layers {
		e.project.Layers[i].Y = y
		y += e.project.Layers[i].Height
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
