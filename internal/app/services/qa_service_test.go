package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerRecipients(t *testing.T) {
	tests := []struct {
		name           string
		questionAuthor int64
		priorAnswerers []int64
		newAuthor      int64
		want           []int64
	}{
		{
			name:           "first answer notifies only the asker",
			questionAuthor: 1,
			priorAnswerers: nil,
			newAuthor:      2,
			want:           []int64{1},
		},
		{
			name:           "asker answering own question notifies prior answerers only",
			questionAuthor: 1,
			priorAnswerers: []int64{2, 3},
			newAuthor:      1,
			want:           []int64{2, 3},
		},
		{
			name:           "answer author never notifies themselves",
			questionAuthor: 1,
			priorAnswerers: []int64{2, 3},
			newAuthor:      3,
			want:           []int64{1, 2},
		},
		{
			name:           "prior answerer who is also the asker gets one notification",
			questionAuthor: 1,
			priorAnswerers: []int64{1, 2},
			newAuthor:      3,
			want:           []int64{1, 2},
		},
		{
			name:           "asker answering their unanswered question notifies nobody",
			questionAuthor: 1,
			priorAnswerers: nil,
			newAuthor:      1,
			want:           nil,
		},
		{
			name:           "duplicate prior answerers collapse",
			questionAuthor: 1,
			priorAnswerers: []int64{2, 2, 2},
			newAuthor:      4,
			want:           []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnswerRecipients(tt.questionAuthor, tt.priorAnswerers, tt.newAuthor)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}
