package merge

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.UnixMilli(1_700_000_000_000)

// stubIDs makes newID return id-1, id-2, ... for the duration of the test.
func stubIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	t.Cleanup(func() { newID = orig })
}

func rec(id string, createdAt int64) models.Record {
	return models.Record{
		ID: id, Title: "title " + id, Content: "content " + id,
		Notes: []models.Note{}, CreatedAt: createdAt, UpdatedAt: createdAt,
	}
}

func ids(recs []models.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestParseImport_RejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"object":         `{"title":"a","content":"b"}`,
		"string":         `"hello"`,
		"null":           `null`,
		"broken":         `[{"title":"a"`,
		"number element": `[1]`,
		"null element":   `[null]`,
		"array element":  `[[]]`,
		"numeric title":  `[{"title":1,"content":"x"}]`,
		"object content": `[{"title":"a","content":{}}]`,
		"numeric id":     `[{"id":7,"title":"a","content":"x"}]`,
		"string created": `[{"title":"a","content":"x","createdAt":"yesterday"}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseImport([]byte(payload))
			require.ErrorIs(t, err, common.ErrImport)
		})
	}
}

func TestParseImport_AcceptsValidPayload(t *testing.T) {
	payload := `[
		{"title":"A","content":"x"},
		{"title":"","content":"y"},
		{"id":"keep","title":"B","content":"z","createdAt":5,"userRating":3,
		 "notes":[{"id":"n","text":"hi","updatedAt":6}]},
		{"title":null,"content":"w"}
	]`
	recs, err := ParseImport([]byte(payload))
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.Equal(t, "keep", recs[2].ID)
	assert.Equal(t, int64(5), recs[2].CreatedAt)
	assert.Equal(t, 3, recs[2].UserRating)
	assert.Equal(t, []models.Note{{ID: "n", Text: "hi", UpdatedAt: 6}}, recs[2].Notes)
}

func TestParseImport_EmptyArray(t *testing.T) {
	recs, err := ParseImport([]byte(` [] `))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSanitize(t *testing.T) {
	stubIDs(t)
	long := strings.Repeat("x", models.MaxIDLength+1)

	in := []models.Record{
		{Title: "  A  ", Content: "x"},
		{Title: "", Content: "y"},
		{Title: "t", Content: "   "},
		{ID: long, Title: "t", Content: "c"},
		{ID: "dup", Title: "first", Content: "c", CreatedAt: 9},
		{ID: "dup", Title: "second", Content: "c"},
		{ID: "big", Title: strings.Repeat("é", 250), Content: "c"},
	}

	out := Sanitize(in, testNow)
	require.Equal(t, []string{"id-1", "id-2", "dup", "big"}, ids(out))

	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, "first", out[2].Title)
	assert.Equal(t, int64(9), out[2].CreatedAt)
	assert.Equal(t, models.MaxTitleLength, len([]rune(out[3].Title)))

	for _, r := range out {
		assert.Equal(t, models.Millis(testNow), r.UpdatedAt)
		assert.NotNil(t, r.Notes)
		if r.ID != "dup" {
			assert.Equal(t, models.Millis(testNow), r.CreatedAt)
		}
	}
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	in := []models.Record{{ID: "a", Title: " t ", Content: "c", Notes: []models.Note{{Text: "n"}}}}
	_ = Sanitize(in, testNow)
	assert.Equal(t, " t ", in[0].Title)
	assert.Equal(t, "", in[0].Notes[0].ID)
}

func TestMergeByID_ExistingWins(t *testing.T) {
	existing := []models.Record{rec("a", 10)}
	incoming := []models.Record{{ID: "a", Title: "changed", Content: "changed", CreatedAt: 10}}

	out := MergeByID(existing, incoming, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "title a", out[0].Title)
	assert.Equal(t, int64(10), out[0].UpdatedAt)
}

func TestMergeByID_SortsNewestFirst(t *testing.T) {
	existing := []models.Record{rec("b", 20), rec("a", 10)}
	incoming := []models.Record{rec("c", 30), rec("z", 5), rec("m", 15)}

	out := MergeByID(existing, incoming, testNow)
	assert.Equal(t, []string{"c", "b", "m", "a", "z"}, ids(out))
}

func TestMergeByID_Identity(t *testing.T) {
	existing := []models.Record{rec("b", 20), rec("a", 10)}

	out := MergeByID(existing, nil, testNow)
	if diff := cmp.Diff(existing, out); diff != "" {
		t.Fatalf("merge with nothing changed the collection (-want +got):\n%s", diff)
	}
}

func TestMergeByID_Idempotent(t *testing.T) {
	existing := []models.Record{rec("b", 20), rec("a", 10)}
	incoming := []models.Record{rec("c", 30), rec("a", 99)}

	once := MergeByID(existing, incoming, testNow)
	twice := MergeByID(once, incoming, testNow.Add(time.Hour))
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second merge changed the result (-once +twice):\n%s", diff)
	}
}

func TestMergeByID_SizeBound(t *testing.T) {
	existing := []models.Record{rec("a", 1), rec("b", 2)}
	incoming := []models.Record{rec("b", 3), rec("c", 4), {Title: "", Content: "x"}}

	out := MergeByID(existing, incoming, testNow)
	assert.LessOrEqual(t, len(out), len(existing)+len(incoming))
	assert.GreaterOrEqual(t, len(out), len(existing))
	assert.Len(t, out, 3)
}

func TestMergeByID_DoesNotAliasExisting(t *testing.T) {
	existing := []models.Record{rec("a", 1)}
	out := MergeByID(existing, nil, testNow)
	out[0].Title = "mutated"
	assert.Equal(t, "title a", existing[0].Title)
}

func TestImportScenario_OnlyValidEntryAdmitted(t *testing.T) {
	stubIDs(t)
	recs, err := ParseImport([]byte(`[{"title":"A","content":"x"},{"title":"","content":"y"}]`))
	require.NoError(t, err)

	out := MergeByID([]models.Record{}, recs, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, "x", out[0].Content)
	assert.Equal(t, "id-1", out[0].ID)
	assert.Equal(t, models.Millis(testNow), out[0].CreatedAt)
}
