package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voteKey struct {
	answerID int64
	userID   int64
}

// fakeVoteTx backs the vote-toggle flow with an in-memory answer_votes table.
type fakeVoteTx struct {
	pgx.Tx
	votes map[voteKey]bool
}

func (f *fakeVoteTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "INSERT INTO answer_votes"):
		k := voteKey{args[0].(int64), args[1].(int64)}
		if f.votes[k] {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		f.votes[k] = true
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "DELETE FROM answer_votes"):
		delete(f.votes, voteKey{args[0].(int64), args[1].(int64)})
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected statement: %s", sql)
}

func (f *fakeVoteTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if !strings.Contains(sql, "SELECT COUNT(*) FROM answer_votes") {
		return scanErrRow{fmt.Errorf("unexpected query: %s", sql)}
	}
	count := 0
	for k := range f.votes {
		if k.answerID == args[0].(int64) {
			count++
		}
	}
	return intRow(count)
}

type intRow int

func (r intRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = int(r)
	return nil
}

type scanErrRow struct{ err error }

func (r scanErrRow) Scan(dest ...any) error { return r.err }

func TestToggleVoteTwiceRestoresState(t *testing.T) {
	repo := NewAnswerRepository(nil)
	tx := &fakeVoteTx{votes: map[voteKey]bool{}}
	ctx := context.Background()

	voted, count, err := repo.ToggleVoteTx(ctx, tx, 7, 42)
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, 1, count)

	voted, count, err = repo.ToggleVoteTx(ctx, tx, 7, 42)
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Equal(t, 0, count)
	assert.Empty(t, tx.votes)

	// The pair of toggles leaves no trace, so a third call votes again.
	voted, count, err = repo.ToggleVoteTx(ctx, tx, 7, 42)
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, 1, count)
}

func TestToggleVoteCountsOnlyThisAnswer(t *testing.T) {
	repo := NewAnswerRepository(nil)
	tx := &fakeVoteTx{votes: map[voteKey]bool{
		{answerID: 7, userID: 1}: true,
		{answerID: 9, userID: 2}: true,
	}}

	voted, count, err := repo.ToggleVoteTx(context.Background(), tx, 7, 2)
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, 2, count)

	// The other answer's vote is untouched.
	assert.True(t, tx.votes[voteKey{answerID: 9, userID: 2}])
}
