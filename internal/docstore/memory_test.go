package docstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags,omitempty"`
	Count int      `json:"count"`
}

func TestRefs_Path(t *testing.T) {
	gyms := Collection("gyms")
	addresses := gyms.Doc("g1").Collection("addresses")

	assert.Equal(t, "gyms", gyms.Path())
	assert.Equal(t, "gyms/g1", gyms.Doc("g1").Path())
	assert.Equal(t, "gyms/g1/addresses", addresses.Path())
	assert.Equal(t, "gyms/g1/addresses/a1", addresses.Doc("a1").Path())
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "g1", want: true},
		{id: "5f0c2c1e-9a51-4d7e-b3f4-1f0f6f3c8e2a", want: true},
		{id: "_health", want: true},
		{id: "__", want: true},
		{id: "", want: false},
		{id: ".", want: false},
		{id: "..", want: false},
		{id: "a/b", want: false},
		{id: "g1/contacts/c1", want: false},
		{id: "__name__", want: false},
		{id: strings.Repeat("x", MaxIDLength), want: true},
		{id: strings.Repeat("x", MaxIDLength+1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidID(tt.id))
		})
	}
}

func TestRefs_Valid(t *testing.T) {
	gyms := Collection("gyms")

	assert.True(t, gyms.Doc("g1").Collection("contacts").Doc("c1").Valid())
	assert.False(t, gyms.Doc("g1/contacts/c1").Valid())
	assert.False(t, gyms.Doc("g1/x").Collection("contacts").Valid())
	assert.Equal(t, gyms.Doc("g1").Collection("contacts").Doc("c1").Path(), gyms.Doc("g1/contacts/c1").Path())
}

func TestMemory_CreateGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ref := Collection("focus").Doc("f1")

	require.NoError(t, m.Create(ctx, ref, testDoc{Name: "Yoga", Count: 1}))

	snap, err := m.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "f1", snap.ID())

	var got testDoc
	require.NoError(t, snap.DataTo(&got))
	assert.Equal(t, "Yoga", got.Name)

	t.Run("duplicate id", func(t *testing.T) {
		err := m.Create(ctx, ref, testDoc{Name: "Other"})
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := m.Get(ctx, Collection("focus").Doc("nope"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemory_UpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ref := Collection("gyms").Doc("g1")
	require.NoError(t, m.Create(ctx, ref, testDoc{Name: "Iron", Tags: []string{"a"}, Count: 1}))

	require.NoError(t, m.Update(ctx, ref, map[string]any{"count": 5}))

	snap, err := m.Get(ctx, ref)
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, snap.DataTo(&got))
	assert.Equal(t, testDoc{Name: "Iron", Tags: []string{"a"}, Count: 5}, got)

	err = m.Update(ctx, Collection("gyms").Doc("missing"), map[string]any{"count": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ListGetAllDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	coll := Collection("gyms").Doc("g1").Collection("contacts")
	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, m.Create(ctx, coll.Doc(id), testDoc{Name: id}))
	}

	all, err := m.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c1", all[0].ID())
	assert.Equal(t, "c3", all[2].ID())

	some, err := m.GetAll(ctx, []DocRef{coll.Doc("c3"), coll.Doc("missing"), coll.Doc("c1")})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "c3", some[0].ID())
	assert.Equal(t, "c1", some[1].ID())

	require.NoError(t, m.Delete(ctx, coll.Doc("c2")))
	require.NoError(t, m.Delete(ctx, coll.Doc("c2")))

	all, err = m.List(ctx, coll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	empty, err := m.List(ctx, Collection("unknown"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
