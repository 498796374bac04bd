package db

import (
	"context"
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func fullHistory() types.StructuredHistory {
	return types.StructuredHistory{
		ContactInformation: types.ContactInformation{
			FullName: "Jane Doe",
			Email:    []string{"jane@example.com"},
			Phones:   []string{"(555) 123-4567"},
		},
		Skills: []string{"Go", "PostgreSQL"},
		Education: []types.EducationEntry{{
			School:  "University of Michigan",
			Degree:  "MBA, Operations",
			EndDate: types.MonthYear{Month: "12", Year: "1989"},
		}},
		Certifications: []types.CertificationEntry{{
			CertName:     "AWS Certified Solutions Architect - Professional",
			Issuer:       "Amazon Web Services",
			IssuedDate:   types.MonthYear{Month: "03", Year: "2023"},
			CredentialID: "ABC-123",
		}},
		JobHistory: []types.JobHistoryEntry{{
			Title:            "Senior Software Engineer",
			Company:          "TechCorp",
			StartDate:        types.MonthYear{Month: "01", Year: "2020"},
			CurrentlyWorking: true,
			Accomplishments:  []string{"Led migration to Kubernetes"},
		}},
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.NewString()
	h := fullHistory()

	require.NoError(t, store.SaveHistory(ctx, userID, h))

	got, err := store.GetHistory(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestMemoryStore_ReadDoesNotAliasWrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.NewString()
	h := fullHistory()

	require.NoError(t, store.SaveHistory(ctx, userID, h))
	h.Skills[0] = "changed"

	got, err := store.GetHistory(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Skills[0])
}

func TestMemoryStore_MissingUserIsEmptyAggregate(t *testing.T) {
	got, err := NewMemoryStore().GetHistory(context.Background(), uuid.NewString())
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"contactInformation": {"fullName": "", "email": [], "phones": []},
		"skills": [],
		"education": [],
		"certifications": [],
		"jobHistory": []
	}`, string(data))
}

func TestMemoryStore_UpdateContactSplicesOnlyContact(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.NewString()
	require.NoError(t, store.SaveHistory(ctx, userID, fullHistory()))

	updated, err := store.UpdateContact(ctx, userID, types.ContactInformation{FullName: "Jane Smith"})
	require.NoError(t, err)

	want := fullHistory()
	want.ContactInformation = types.ContactInformation{FullName: "Jane Smith", Email: []string{}, Phones: []string{}}
	assert.Equal(t, want, updated)

	stored, err := store.GetHistory(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestMemoryStore_UpdateContactWithoutHistory(t *testing.T) {
	store := NewMemoryStore()

	updated, err := store.UpdateContact(context.Background(), uuid.NewString(), types.ContactInformation{FullName: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.ContactInformation.FullName)
	assert.NotNil(t, updated.Skills)
	assert.Empty(t, updated.JobHistory)
}

func TestMemoryStore_Documents(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.NewString()

	first, err := store.SaveDocument(ctx, userID, types.Document{Name: "resume.txt", Type: types.DocumentTypeTXT, Category: types.CategoryResume, Content: []byte("Jane Doe")})
	require.NoError(t, err)
	_, err = store.SaveDocument(ctx, userID, types.Document{Name: "posting.html", Type: types.DocumentTypeHTML, Category: types.CategoryJobPosting, Content: []byte("<p>hiring</p>")})
	require.NoError(t, err)

	records, err := store.ListDocuments(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, 8, records[0].SizeBytes)
	assert.Len(t, records[0].ContentHash, 64)

	docs, err := store.LoadDocuments(ctx, userID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID.String(), docs[0].ID)
	assert.Equal(t, []byte("Jane Doe"), docs[0].Content)
	assert.Equal(t, types.CategoryJobPosting, docs[1].Category)

	other, err := store.ListDocuments(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestMemoryStore_InvalidUserID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetHistory(context.Background(), "not-a-uuid")

	var idErr *InvalidIDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "user", idErr.Kind)
	assert.Contains(t, err.Error(), "not-a-uuid")
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_structured_histories.sql", "00002_documents.sql"}, names)
}
