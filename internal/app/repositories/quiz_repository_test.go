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

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
)

// fakeOptionTx backs the option-write flow with an in-memory answer_options
// table.
type fakeOptionTx struct {
	pgx.Tx
	nextID  int64
	options map[int64]*models.AnswerOption
}

func (f *fakeOptionTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "SET correct = FALSE"):
		questionID := args[0].(int64)
		cleared := 0
		for _, o := range f.options {
			if o.QuestionID == questionID && o.Correct {
				o.Correct = false
				cleared++
			}
		}
		return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", cleared)), nil
	case strings.Contains(sql, "SET text ="):
		o, ok := f.options[args[2].(int64)]
		if !ok {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		o.Text = args[0].(string)
		o.Correct = args[1].(bool)
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected statement: %s", sql)
}

func (f *fakeOptionTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if !strings.Contains(sql, "INSERT INTO answer_options") {
		return scanErrRow{fmt.Errorf("unexpected query: %s", sql)}
	}
	f.nextID++
	f.options[f.nextID] = &models.AnswerOption{
		ID:         f.nextID,
		QuestionID: args[0].(int64),
		Text:       args[1].(string),
		Correct:    args[2].(bool),
	}
	return int64Row(f.nextID)
}

func (f *fakeOptionTx) correctIDs(questionID int64) []int64 {
	var ids []int64
	for id, o := range f.options {
		if o.QuestionID == questionID && o.Correct {
			ids = append(ids, id)
		}
	}
	return ids
}

type int64Row int64

func (r int64Row) Scan(dest ...any) error {
	*(dest[0].(*int64)) = int64(r)
	return nil
}

func TestOptionWritesKeepSingleCorrect(t *testing.T) {
	repo := NewQuizRepository(nil)
	tx := &fakeOptionTx{options: map[int64]*models.AnswerOption{}}
	ctx := context.Background()

	// Adding a correct option clears any sibling flag first, the same
	// sequence the service runs inside one transaction.
	addCorrect := func(text string) *models.AnswerOption {
		require.NoError(t, repo.ClearCorrectTx(ctx, tx, 3))
		option := &models.AnswerOption{QuestionID: 3, Text: text, Correct: true}
		require.NoError(t, repo.InsertOptionTx(ctx, tx, option))
		return option
	}

	first := addCorrect("four")
	second := addCorrect("five")

	assert.Equal(t, []int64{second.ID}, tx.correctIDs(3))
	assert.False(t, tx.options[first.ID].Correct)

	// A plain option goes in without touching the flags.
	third := &models.AnswerOption{QuestionID: 3, Text: "six"}
	require.NoError(t, repo.InsertOptionTx(ctx, tx, third))
	assert.Equal(t, []int64{second.ID}, tx.correctIDs(3))

	// Promoting an existing option runs the same clear-then-write sequence.
	require.NoError(t, repo.ClearCorrectTx(ctx, tx, 3))
	third.Correct = true
	require.NoError(t, repo.UpdateOptionTx(ctx, tx, third))
	assert.Equal(t, []int64{third.ID}, tx.correctIDs(3))
}

func TestUpdateOptionTxMissingOption(t *testing.T) {
	repo := NewQuizRepository(nil)
	tx := &fakeOptionTx{options: map[int64]*models.AnswerOption{}}

	err := repo.UpdateOptionTx(context.Background(), tx, &models.AnswerOption{ID: 99, Text: "gone"})
	assert.ErrorIs(t, err, apperrors.ErrOptionNotFound)
}
