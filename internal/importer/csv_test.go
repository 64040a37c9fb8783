package importer

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource(t *testing.T) {
	input := "\uFEFFCount,Name,Edition Code,Card Number,Extra\n" +
		"2,Lord of Tresserhorn,gu,1,x\n" +
		",,,,\n" +
		" 1 , Shock ,m20\n"

	src, err := NewCSVSource(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Count", "Name", "Edition Code", "Card Number", "Extra"}, src.Header())

	rec, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Line)
	assert.Equal(t, "2", rec.Count)
	assert.Equal(t, "Lord of Tresserhorn", rec.Name)
	assert.Equal(t, "gu", rec.EditionCode)
	assert.Equal(t, "1", rec.CardNumber)
	assert.Empty(t, rec.Edition)
	assert.Equal(t, []string{"2", "Lord of Tresserhorn", "gu", "1", "x"}, rec.Raw)

	rec, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Line, "blank rows are skipped but still counted")
	assert.Equal(t, "Shock", rec.Name)
	assert.Empty(t, rec.CardNumber, "short rows read missing columns as empty")

	_, err = src.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestCSVSource_RequiresName(t *testing.T) {
	_, err := NewCSVSource(strings.NewReader("Count,Edition\n1,Alpha\n"))
	assert.Error(t, err)

	_, err = NewCSVSource(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCSVRejectWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVRejectWriter(&buf, []string{"Count", "Name"})
	require.NoError(t, err)

	require.NoError(t, w.WriteReject(Reject{Record: Record{Raw: []string{"1", "Shock, Jr."}}, Error: "card not found"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "Count,Name,Error\n1,\"Shock, Jr.\",card not found\n", buf.String())
}

func TestCSVRejectWriter_ReusesErrorColumn(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVRejectWriter(&buf, []string{"Name", "Error", "Count"})
	require.NoError(t, err)

	require.NoError(t, w.WriteReject(Reject{Record: Record{Raw: []string{"Shock", "old error", "1"}}, Error: "new error"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "Name,Error,Count\nShock,new error,1\n", buf.String())
}

func TestCSVRejectWriter_KeepsExtraFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVRejectWriter(&buf, []string{"Count", "Name"})
	require.NoError(t, err)

	require.NoError(t, w.WriteReject(Reject{Record: Record{Raw: []string{"1", "Shock", "stray"}}, Error: "card not found"}))
	require.NoError(t, w.WriteReject(Reject{Record: Record{Raw: []string{"2"}}, Error: "missing name"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "Count,Name,Error\n1,Shock,stray,card not found\n2,,missing name\n", buf.String())
}

// A reject file must be importable again once its rows are corrected.
func TestCSVRejectWriter_RoundTrip(t *testing.T) {
	header := []string{"Count", "Name", "Edition Code"}
	var buf bytes.Buffer
	w, err := NewCSVRejectWriter(&buf, header)
	require.NoError(t, err)
	require.NoError(t, w.WriteReject(Reject{Record: Record{Raw: []string{"3", "Fling", "eld"}}, Error: "bad"}))
	require.NoError(t, w.Flush())

	src, err := NewCSVSource(&buf)
	require.NoError(t, err)
	rec, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "3", rec.Count)
	assert.Equal(t, "Fling", rec.Name)
	assert.Equal(t, "eld", rec.EditionCode)
}
