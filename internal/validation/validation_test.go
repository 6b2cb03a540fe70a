package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmap/internal/apperr"
	"fitmap/internal/model"
)

func violationsOf(t *testing.T, err error) []apperr.Violation {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.KindValidation, appErr.Kind)
	return appErr.Violations
}

func fields(vs []apperr.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

func TestCheckContentType(t *testing.T) {
	tests := []struct {
		header  string
		wantErr bool
	}{
		{header: "application/json"},
		{header: "application/json; charset=utf-8"},
		{header: "application/merge-patch+json"},
		{header: "", wantErr: true},
		{header: "text/plain", wantErr: true},
		{header: "multipart/form-data; boundary=x", wantErr: true},
		{header: ";;;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			err := CheckContentType(tt.header)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.Is(err, apperr.KindUnsupportedMediaType))
		})
	}
}

func TestStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		payload    any
		wantFields []string
	}{
		{
			name:    "valid focus",
			payload: &model.Focus{Name: "Yoga"},
		},
		{
			name:       "blank focus name",
			payload:    &model.Focus{Name: "   "},
			wantFields: []string{"name"},
		},
		{
			name: "collects every violation of nested children",
			payload: &model.Gym{
				Sports: []string{"Yoga", " "},
				Contacts: []*model.Contact{
					{Name: "", Email: "not-an-email"},
				},
			},
			wantFields: []string{"sports[1]", "contacts[0].name", "contacts[0].email"},
		},
		{
			name:       "future timestamp",
			payload:    &model.Focus{Metadata: model.Metadata{CreatedAt: time.Now().Add(time.Hour)}, Name: "Yoga"},
			wantFields: []string{"created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.payload)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.wantFields, fields(violationsOf(t, err)))
		})
	}
}

func TestStruct_Messages(t *testing.T) {
	v := New()

	err := v.Struct(&model.PersonalTrainer{Name: string(make([]byte, 201))})

	vs := violationsOf(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "name", vs[0].Field)
	assert.Equal(t, "must be at most 200 characters long", vs[0].Message)
}

func TestSlice(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Slice(v, []*model.Focus{{Name: "Yoga"}, {Name: "Crossfit"}}))
	})

	t.Run("indexes violations", func(t *testing.T) {
		err := Slice(v, []*model.Focus{{Name: "Yoga"}, {Name: ""}, nil})

		vs := violationsOf(t, err)
		assert.Equal(t, []string{"[1].name", "[2]"}, fields(vs))
	})
}

func TestCheckNotEmpty(t *testing.T) {
	assert.NoError(t, CheckNotEmpty([]string{"a"}))
	assert.True(t, apperr.Is(CheckNotEmpty([]string{}), apperr.KindValidation))
	assert.True(t, apperr.Is(CheckNotEmpty[*model.Focus](nil), apperr.KindValidation))
}

func TestStrings(t *testing.T) {
	v := New()

	assert.NoError(t, v.Strings([]string{"Yoga", "Crossfit"}, 200))

	err := v.Strings([]string{"Yoga", "  ", "Pilates"}, 5)

	vs := violationsOf(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, apperr.Violation{Field: "[1]", Message: "must not be blank"}, vs[0])
	assert.Equal(t, apperr.Violation{Field: "[2]", Message: "must be at most 5 characters long"}, vs[1])
}

func TestIDs(t *testing.T) {
	v := New()

	assert.NoError(t, v.IDs([]string{"g1", "5f0c2c1e-9a51-4d7e-b3f4-1f0f6f3c8e2a"}))

	err := v.IDs([]string{"g1", "g1/contacts/c1", "__name__", " "})

	vs := violationsOf(t, err)
	assert.Equal(t, []string{"[1]", "[2]", "[3]"}, fields(vs))
	assert.Contains(t, vs[0].Message, "without '/'")
}

func TestStruct_RejectsPathLikeIDs(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(&model.Gym{}))
	assert.NoError(t, v.Struct(&model.Gym{Metadata: model.Metadata{ID: "iron-gym"}}))

	err := v.Struct(&model.Gym{Metadata: model.Metadata{ID: "g1/contacts/c1"}})

	vs := violationsOf(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "id", vs[0].Field)

	err = Slice(v, []*model.Focus{{Metadata: model.Metadata{ID: "a/b"}, Name: "Yoga"}})
	assert.Equal(t, []string{"[0].id"}, fields(violationsOf(t, err)))
}
