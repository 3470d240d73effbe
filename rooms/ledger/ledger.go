// Package ledger keeps per-movie sets of voter identities for one room.
//
// A Ledger is not safe for concurrent use; the owning room serializes access.
package ledger

type voters map[string]struct{}

type Ledger struct {
	votes map[int]voters
}

func New() *Ledger {
	return &Ledger{votes: make(map[int]voters)}
}

// Add records voter's like on movieID and returns how many distinct voters
// liked it. Adding the same voter twice leaves the count unchanged.
func (l *Ledger) Add(movieID int, voter string) int {
	set, ok := l.votes[movieID]
	if !ok {
		set = make(voters)
		l.votes[movieID] = set
	}
	set[voter] = struct{}{}
	return len(set)
}

func (l *Ledger) Count(movieID int) int {
	return len(l.votes[movieID])
}

func (l *Ledger) HasVoted(movieID int, voter string) bool {
	_, ok := l.votes[movieID][voter]
	return ok
}

// Movies is the number of movies with at least one vote.
func (l *Ledger) Movies() int {
	return len(l.votes)
}

// Counts snapshots every tally.
func (l *Ledger) Counts() map[int]int {
	out := make(map[int]int, len(l.votes))
	for id, set := range l.votes {
		out[id] = len(set)
	}
	return out
}
