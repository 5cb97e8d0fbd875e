package match

import (
	"fmt"
	"sort"
	"time"
)

// Knockout rounds restart their matchday numbering at 1, so matchday alone
// cannot order a season that mixes a league phase with a bracket. Each
// knockout stage gets a fixed base offset above the largest league matchday
// a supported competition can have; virtual order = offset + leg number.
// Stages that never co-exist in one competition may share a band.
var stageOffsets = map[Stage]int{
	StagePreliminary:   6,
	StagePlayoffs:      8,
	StageLast32:        9,
	StageLast16:        10,
	StageQuarterFinals: 12,
	StageSemiFinals:    14,
	StageThirdPlace:    15,
	StageFinal:         16,
}

// Orders past every known stage, for stages the feed may add later.
const fallbackStageOffset = 18

// Group is one virtual matchday: all matches sharing an ordering slot.
// A group may be empty when the slot is inside the tournament range but the
// schedule has no matches for it yet.
type Group struct {
	VirtualOrder int
	Stage        *Stage
	Matchday     int
	Label        string
	Matches      []Match
}

// Decided reports whether every match of a non-empty group has a result.
// Empty and partially decided groups count as "no result yet".
func (g Group) Decided() bool {
	if len(g.Matches) == 0 {
		return false
	}
	for _, m := range g.Matches {
		if !m.Decided() {
			return false
		}
	}
	return true
}

// EarliestKickoff returns the first known kickoff time in the group.
func (g Group) EarliestKickoff() (time.Time, bool) {
	var min time.Time
	for _, m := range g.Matches {
		if m.KickoffAt.IsZero() {
			continue
		}
		if min.IsZero() || m.KickoffAt.Before(min) {
			min = m.KickoffAt
		}
	}
	return min, !min.IsZero()
}

// LatestKickoff returns the last known kickoff time in the group.
func (g Group) LatestKickoff() (time.Time, bool) {
	var max time.Time
	for _, m := range g.Matches {
		if m.KickoffAt.IsZero() {
			continue
		}
		if m.KickoffAt.After(max) {
			max = m.KickoffAt
		}
	}
	return max, !max.IsZero()
}

func virtualOrderFor(m Match) int {
	if !IsKnockout(m.Stage) {
		return m.Matchday
	}
	offset, ok := stageOffsets[*m.Stage]
	if !ok {
		offset = fallbackStageOffset
	}
	matchday := m.Matchday
	if matchday <= 0 {
		matchday = 1
	}
	return offset + matchday
}

// BuildGroups orders all matches of one competition into virtual matchday
// groups restricted to [fromOrder, toOrder].
//
// Flat championships keep the identity mapping and emit an empty group for
// every matchday in range that has no matches yet. Competitions with a
// knockout portion emit empty groups only for holes inside the observed
// league phase; bracket rounds appear once the schedule knows about them.
func BuildGroups(matches []Match, fromOrder, toOrder int) []Group {
	byOrder := make(map[int]*Group)
	hasKnockout := false
	maxLeagueMatchday := 0

	for _, m := range matches {
		order := virtualOrderFor(m)
		if IsKnockout(m.Stage) {
			hasKnockout = true
		} else if m.Matchday > maxLeagueMatchday {
			maxLeagueMatchday = m.Matchday
		}

		group, ok := byOrder[order]
		if !ok {
			matchday := m.Matchday
			if IsKnockout(m.Stage) && matchday <= 0 {
				matchday = 1
			}
			group = &Group{
				VirtualOrder: order,
				Stage:        m.Stage,
				Matchday:     matchday,
			}
			byOrder[order] = group
		}
		group.Matches = append(group.Matches, m)
	}

	fillTo := toOrder
	if hasKnockout && maxLeagueMatchday < fillTo {
		fillTo = maxLeagueMatchday
	}
	for order := fromOrder; order <= fillTo; order++ {
		if _, ok := byOrder[order]; !ok {
			byOrder[order] = &Group{VirtualOrder: order, Matchday: order}
		}
	}

	out := make([]Group, 0, len(byOrder))
	for order, group := range byOrder {
		if order < fromOrder || order > toOrder {
			continue
		}
		sort.SliceStable(group.Matches, func(i, j int) bool {
			a, b := group.Matches[i], group.Matches[j]
			if !a.KickoffAt.Equal(b.KickoffAt) {
				return a.KickoffAt.Before(b.KickoffAt)
			}
			return a.ID < b.ID
		})
		out = append(out, *group)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VirtualOrder != out[j].VirtualOrder {
			return out[i].VirtualOrder < out[j].VirtualOrder
		}
		// Defensive tie-break; virtual orders should not normally collide.
		iKick, iOK := out[i].EarliestKickoff()
		jKick, jOK := out[j].EarliestKickoff()
		if iOK && jOK {
			return iKick.Before(jKick)
		}
		return iOK
	})

	labelGroups(out)
	return out
}

func labelGroups(groups []Group) {
	for i := range groups {
		if !IsKnockout(groups[i].Stage) {
			groups[i].Label = fmt.Sprintf("Matchday %d", groups[i].VirtualOrder)
			continue
		}
		groups[i].Label = groups[i].Stage.Label()
	}

	// Two-legged knockout rounds show up as adjacent groups with the same
	// stage; tell the legs apart by position.
	for i := 0; i < len(groups); i++ {
		if !IsKnockout(groups[i].Stage) {
			continue
		}
		if i+1 < len(groups) && sameStage(groups[i].Stage, groups[i+1].Stage) {
			groups[i].Label = fmt.Sprintf("%s Leg 1", groups[i].Stage.Label())
			groups[i+1].Label = fmt.Sprintf("%s Leg 2", groups[i+1].Stage.Label())
			i++
		}
	}
}

func sameStage(a, b *Stage) bool {
	return a != nil && b != nil && *a == *b
}

// HasKnockoutStages reports whether any match belongs to a knockout stage.
func HasKnockoutStages(matches []Match) bool {
	for _, m := range matches {
		if IsKnockout(m.Stage) {
			return true
		}
	}
	return false
}
