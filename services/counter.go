package services

import "time"

// NextReference is the pure decision behind tab reference allocation: the
// stored counter advances by one within a calendar day and restarts at 1 on
// the first allocation of a new day. Days are compared in UTC.
func NextReference(counter int, lastReset time.Time, now time.Time) (int, time.Time) {
	if sameDay(lastReset, now) {
		return counter + 1, lastReset
	}
	return 1, startOfDay(now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
