/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// surface.go turns the projected command surface into cobra commands.
//
// Separated from root.go because the tree is rebuilt from the tags file on
// every run, while the root command's own setup is fixed.
//
// Design: reserved commands are added before the tags at every level and
// command sorting is off, so a reserved word always wins the lookup. Tag
// commands accept arbitrary arguments; anything cobra cannot match is left
// for the resolver to report as "no tag found".

package cmd

import (
	"slices"

	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/validate"
	"github.com/spf13/cobra"
)

const (
	tagsGroup    = "tags"
	subtagsGroup = "subtags"
)

func init() {
	cobra.EnableCommandSorting = false
}

// addUnits adds one cobra command per unit to parent, recursing into
// subtags. group is the help group tag commands are listed under.
func (a *app) addUnits(parent *cobra.Command, units []project.Unit, group string) {
	for _, u := range units {
		c := &cobra.Command{
			Use:    u.Name,
			Short:  u.Short,
			Long:   u.Long,
			Args:   cobra.ArbitraryArgs,
			Hidden: u.Hidden,
			RunE:   a.run,
		}

		if u.Reserved {
			c.Annotations = map[string]string{opAnnotation: string(u.Op)}
			if u.Op == project.OpAdd {
				c.Use = "add [NAME]"
			}
			addPayloadFlags(c, u.Op)
			parent.AddCommand(c)
			continue
		}

		// The reserved commands already own these names at this level.
		c.Aliases = slices.DeleteFunc(slices.Clone(u.Aliases), validate.IsReserved)
		c.GroupID = group
		addActionFlags(c)
		if len(project.Tags(u.Children)) > 0 {
			c.AddGroup(&cobra.Group{ID: subtagsGroup, Title: "Subtags:"})
		}
		a.addUnits(c, u.Children, subtagsGroup)
		parent.AddCommand(c)
	}
}
