package key

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileSystem abstracts file reading so keymap loading is testable with
// in-memory files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// keymapFile is the TOML shape of a keymap file:
//
//	[bindings]
//	quit = ["q", "ctrl+c"]
//	up   = ["up", "k"]
type keymapFile struct {
	Bindings map[string][]string `toml:"bindings"`
}

// Keymap maps action names to the chords bound to them.
type Keymap map[string][]Chord

// LoadKeymap parses a TOML keymap file. Action names are free-form; the
// caller resolves them to application actions, usually via ApplyKeymap.
func LoadKeymap(fsys FileSystem, path string) (Keymap, error) {
	if fsys == nil {
		fsys = OSFS{}
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}

	var file keymapFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse keymap %s: %w", path, err)
	}

	km := make(Keymap, len(file.Bindings))
	for action, specs := range file.Bindings {
		chords := make([]Chord, 0, len(specs))
		for _, spec := range specs {
			c, err := Parse(spec)
			if err != nil {
				return nil, fmt.Errorf("keymap %s, action %q: %w", path, action, err)
			}
			chords = append(chords, c)
		}
		km[action] = chords
	}
	return km, nil
}

// ApplyKeymap builds a binding set from a keymap using the given action
// table. Actions named in the keymap but missing from the table are
// reported as an error so typos in config files surface early.
func ApplyKeymap[T any](km Keymap, actions map[string]T) (*Bindings[T], error) {
	b := NewBindings[T]()
	for name, chords := range km {
		action, ok := actions[name]
		if !ok {
			return nil, fmt.Errorf("keymap action %q is not defined", name)
		}
		b.Bind(action, chords...)
	}
	return b, nil
}
