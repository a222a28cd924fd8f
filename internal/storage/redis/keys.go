package redis

import (
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// keyspace builds every key under one prefix so several deployments can
// share a Redis database
type keyspace string

func (k keyspace) place(id string) string {
	return string(k) + ":place:" + id
}

func (k keyspace) race(id string) string {
	return string(k) + ":race:" + id
}

// placeIndex is the sorted set of place ids for a race kind, scored by the
// JST start date as YYYYMMDD
func (k keyspace) placeIndex(kind model.RaceKind) string {
	return string(k) + ":idx:places:" + kind.Prefix()
}

// raceIndex is the sorted set of race ids for a race kind
func (k keyspace) raceIndex(kind model.RaceKind) string {
	return string(k) + ":idx:races:" + kind.Prefix()
}
