package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "blank", raw: "  ", want: nil},
		{name: "single broker", raw: "localhost:9092", want: []string{"localhost:9092"}},
		{name: "trims entries", raw: " kafka-1:9092 , kafka-2:9092", want: []string{"kafka-1:9092", "kafka-2:9092"}},
		{name: "drops blanks and repeats", raw: "kafka-1:9092,,kafka-1:9092, ,kafka-2:9092", want: []string{"kafka-1:9092", "kafka-2:9092"}},
		{name: "keeps case", raw: "Kafka:9092,kafka:9092", want: []string{"Kafka:9092", "kafka:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.raw))
		})
	}
}

func TestDedupeAndTrimKeepsNil(t *testing.T) {
	assert.Nil(t, DedupeAndTrim(nil))
	assert.Equal(t, []string{}, DedupeAndTrim([]string{}))
}
