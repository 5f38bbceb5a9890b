package richtext

import (
	"fmt"
)

// ValidationError describes one broken tree invariant.
type ValidationError struct {
	// Path locates the offending node, e.g. "[2].children[1].marks".
	Path string

	// Message describes what is wrong.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Path + ": " + e.Message
}

// Validate checks the tree invariants of converted content:
//   - every block has at least one child,
//   - no span text is empty,
//   - identifiers are unique and absent from excluded,
//   - each link mark resolves to a mark definition of its own block,
//   - each block has at most one link mark per span.
//
// excluded may be nil.
func Validate(content Content, excluded func(string) bool) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]string)

	checkKey := func(key, path string) {
		switch {
		case key == "":
			errs = append(errs, ValidationError{Path: path, Message: "missing _key"})
		case excluded != nil && excluded(key):
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("_key %q is excluded", key)})
		default:
			if prev, dup := seen[key]; dup {
				errs = append(errs, ValidationError{
					Path:    path,
					Message: fmt.Sprintf("_key %q duplicates %s", key, prev),
				})
				return
			}
			seen[key] = path
		}
	}

	for i := range content {
		block := &content[i]
		blockPath := fmt.Sprintf("[%d]", i)
		checkKey(block.Key, blockPath)

		if len(block.Children) == 0 {
			errs = append(errs, ValidationError{Path: blockPath + ".children", Message: "block has no children"})
		}

		defs := make(map[string]struct{}, len(block.MarkDefs))
		for j, def := range block.MarkDefs {
			defPath := fmt.Sprintf("%s.markDefs[%d]", blockPath, j)
			checkKey(def.Key, defPath)
			defs[def.Key] = struct{}{}
		}

		for j := range block.Children {
			child := &block.Children[j]
			childPath := fmt.Sprintf("%s.children[%d]", blockPath, j)
			checkKey(child.Key, childPath)

			if child.Text == "" {
				errs = append(errs, ValidationError{Path: childPath + ".text", Message: "empty span text"})
			}

			links := 0
			for _, mark := range child.Marks {
				if mark == MarkEmphasis || mark == MarkStrong {
					continue
				}
				links++
				if _, ok := defs[mark]; !ok {
					errs = append(errs, ValidationError{
						Path:    childPath + ".marks",
						Message: fmt.Sprintf("mark %q has no definition in block", mark),
					})
				}
			}
			if links > 1 {
				errs = append(errs, ValidationError{Path: childPath + ".marks", Message: "more than one link mark"})
			}
		}
	}

	return errs
}
