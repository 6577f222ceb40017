package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opine-io/opine-client/pkg/opine"
)

func TestParseFullNameArg(t *testing.T) {
	owner, name, err := parseFullNameArg(opine.KindSource, "acme/reviews")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "reviews", name)
}

func TestParseFullNameArgRejectsID(t *testing.T) {
	_, _, err := parseFullNameArg(opine.KindSource, "abc123")
	require.ErrorIs(t, err, ErrFullNameRequired)
}

func TestParseFullNameArgRejectsGarbage(t *testing.T) {
	_, _, err := parseFullNameArg(opine.KindDataset, "a/b/c")
	require.Error(t, err)

	var badIdentifier *opine.BadIdentifierError
	require.ErrorAs(t, err, &badIdentifier)
	assert.Equal(t, opine.KindDataset, badIdentifier.Kind)
}

func TestParseProjectPermissions(t *testing.T) {
	pairs := []string{"support=review", "support=label", "marketing=view", "malformed", "=view", "support="}

	permissions := parseProjectPermissions(pairs)

	assert.Equal(t, map[string][]string{
		"support":   {"review", "label"},
		"marketing": {"view"},
	}, permissions)
}

func TestParseProjectPermissionsEmpty(t *testing.T) {
	assert.Nil(t, parseProjectPermissions(nil))
}

func TestTopPrediction(t *testing.T) {
	name, probability := topPrediction([]opine.PredictedLabel{
		{Name: []string{"issue"}, Probability: 0.41},
		{Name: []string{"issue", "performance"}, Probability: 0.93},
		{Name: []string{"praise"}, Probability: 0.12},
	})

	assert.Equal(t, "performance", name)
	assert.Equal(t, "0.930", probability)
}

func TestTopPredictionEmpty(t *testing.T) {
	name, probability := topPrediction(nil)
	assert.Empty(t, name)
	assert.Empty(t, probability)
}

func TestCommentPreview(t *testing.T) {
	comment := opine.Comment{
		Messages: []opine.Message{{Body: "line one\nline two"}},
	}

	assert.Equal(t, "line one line two", commentPreview(comment))
}

func TestCommentPreviewTruncates(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}

	comment := opine.Comment{Messages: []opine.Message{{Body: string(long)}}}

	preview := commentPreview(comment)
	assert.Len(t, preview, previewLength+3)
	assert.Contains(t, preview, "...")
}

func TestCommentPreviewNoMessages(t *testing.T) {
	assert.Empty(t, commentPreview(opine.Comment{}))
}

func TestReadCommentsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.json")

	content := `[
		{"id": "cm-1", "timestamp": "2026-01-15T10:00:00Z", "messages": [{"body": "hello"}]},
		{"id": "cm-2", "timestamp": "2026-01-15T11:00:00Z", "messages": [{"body": "world"}]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	comments, err := readCommentsFile(path)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "cm-1", comments[0].ID)
	assert.Equal(t, "world", comments[1].Messages[0].Body)
}

func TestReadCommentsFileMissing(t *testing.T) {
	_, err := readCommentsFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestReadCommentsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0600))

	_, err := readCommentsFile(path)
	require.Error(t, err)
}
