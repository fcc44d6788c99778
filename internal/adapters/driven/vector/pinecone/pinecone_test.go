package pinecone

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

func TestNewProvisioner_RequiresAPIKey(t *testing.T) {
	_, err := NewProvisioner(Config{})
	require.Error(t, err)
}

func TestToVectors(t *testing.T) {
	records := []domain.VectorRecord{
		{
			ID:     "INC-1_0123abcd",
			Values: []float32{0.1, 0.2},
			Metadata: map[string]any{
				"ticket_id":      "INC-1",
				"has_resolution": true,
				"text_length":    42,
			},
		},
		{ID: "INC-2_89abcdef", Values: []float32{0.3, 0.4}},
	}

	vectors, err := toVectors(records)

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, "INC-1_0123abcd", vectors[0].Id)
	require.NotNil(t, vectors[0].Values)
	assert.Equal(t, []float32{0.1, 0.2}, *vectors[0].Values)

	md := vectors[0].Metadata.AsMap()
	assert.Equal(t, "INC-1", md["ticket_id"])
	assert.Equal(t, true, md["has_resolution"])
	assert.Equal(t, float64(42), md["text_length"])

	assert.Nil(t, vectors[1].Metadata)
}

func TestToVectors_RejectsNestedUnsupported(t *testing.T) {
	records := []domain.VectorRecord{
		{ID: "bad", Values: []float32{1}, Metadata: map[string]any{"ch": make(chan int)}},
	}

	_, err := toVectors(records)

	assert.ErrorIs(t, err, domain.ErrVectorStore)
}

func TestFromScored(t *testing.T) {
	md, err := structpb.NewStruct(map[string]any{"text": "Ticket ID: INC-1", "source": "dash"})
	require.NoError(t, err)

	matches := fromScored([]*pinecone.ScoredVector{
		{Vector: &pinecone.Vector{Id: "INC-1_0123abcd", Metadata: md}, Score: 0.5},
		nil,
		{Vector: &pinecone.Vector{Id: "INC-2_89abcdef"}, Score: 0.25},
	})

	require.Len(t, matches, 2)
	assert.Equal(t, "INC-1_0123abcd", matches[0].ID)
	assert.InDelta(t, 0.5, matches[0].Score, 1e-6)
	assert.Equal(t, "Ticket ID: INC-1", matches[0].Metadata["text"])
	assert.Nil(t, matches[1].Metadata)
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "404 from the API",
			err:  &pinecone.PineconeError{Code: 404, Msg: errors.New("Resource it-support not found")},
			want: true,
		},
		{
			name: "wrapped 404",
			err: fmt.Errorf("describe: %w",
				&pinecone.PineconeError{Code: 404, Msg: errors.New("not found")}),
			want: true,
		},
		{
			name: "403 mentioning not found",
			err:  &pinecone.PineconeError{Code: 403, Msg: errors.New("project not found for this API key")},
			want: false,
		},
		{
			name: "transport error",
			err:  errors.New("dial tcp 10.0.0.1:4404: i/o timeout"),
			want: false,
		},
		{
			name: "plain text not found",
			err:  errors.New("index not found"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}
