package loader

import (
	"fmt"
	"strings"

	"github.com/nholm/graphquest/catalog"
	"github.com/nholm/graphquest/graph"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled bundle for referential integrity and runs the
// full graph validator over every declared graph.
func validate(b *Bundle, cat *catalog.Catalog) error {
	ve := &ValidationError{}

	byID := map[string]string{}
	for _, e := range b.Entities {
		byID[e.ID] = e.Category
	}

	if b.StartRoom != "" {
		if c, ok := byID[b.StartRoom]; !ok || c != "room" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"start room %q is not a declared room", b.StartRoom))
		}
	}

	for _, g := range b.Graphs {
		label := g.Owner + "/" + g.OwnerID

		if _, ok := catalog.OwnerBit(g.Owner); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"graph %s: unknown owner type %q", label, g.Owner))
			continue
		}
		if g.Owner != "game" && g.Owner != "player" {
			if c, ok := byID[g.OwnerID]; !ok || c != g.Owner {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"graph %s: owner is not a declared %s", label, g.Owner))
			}
		}

		rep := graph.Validate(g, cat)
		for _, msg := range rep.Errors {
			ve.Errors = append(ve.Errors, fmt.Sprintf("graph %s: %s", label, msg))
		}
		for _, inc := range rep.Incomplete {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"graph %s: node %q (%s) missing %s",
				label, inc.NodeID, inc.Name, strings.Join(inc.Missing, ", ")))
		}
		if len(rep.Errors) == 0 && len(rep.Incomplete) == 0 && !rep.Valid {
			switch {
			case !rep.HasTrigger:
				ve.Errors = append(ve.Errors, fmt.Sprintf("graph %s: no trigger node", label))
			case !rep.HasEffect:
				ve.Errors = append(ve.Errors, fmt.Sprintf("graph %s: no effect node", label))
			case !rep.Reachable:
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"graph %s: no effect reachable from any trigger", label))
			}
		}
		for _, msg := range rep.Warnings {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("graph %s: %s", label, msg))
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
