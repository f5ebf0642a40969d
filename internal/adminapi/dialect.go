package adminapi

import (
	"fmt"
	"strings"

	"dancerfit/admin-dashboard/internal/domain"
)

// TypeDialect selects how the on-demand exercise type is spelled on the wire.
// Deployments of the remote API disagree; decoding accepts every spelling.
type TypeDialect string

const (
	DialectOnDemand   TypeDialect = "ondemand"
	DialectOnDemandUS TypeDialect = "on_demand"
)

const wireRegular = "regular"

// ParseDialect validates a configured dialect. Empty means DialectOnDemand.
func ParseDialect(s string) (TypeDialect, error) {
	switch TypeDialect(strings.ToLower(strings.TrimSpace(s))) {
	case "", DialectOnDemand:
		return DialectOnDemand, nil
	case DialectOnDemandUS:
		return DialectOnDemandUS, nil
	default:
		return "", fmt.Errorf("unknown type dialect %q", s)
	}
}

func (d TypeDialect) wireExerciseType(t domain.ExerciseType) string {
	switch t {
	case domain.ExerciseTypeStandalone:
		return wireRegular
	case domain.ExerciseTypeOnDemand:
		if d == DialectOnDemandUS {
			return string(DialectOnDemandUS)
		}
		return string(DialectOnDemand)
	default:
		return ""
	}
}

func parseExerciseType(s string) domain.ExerciseType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "standalone":
		return domain.ExerciseTypeStandalone
	case "ondemand", "on_demand", "on-demand":
		return domain.ExerciseTypeOnDemand
	default:
		return domain.ExerciseTypeUnset
	}
}
