package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"forum-sentiment/internal/textnorm"
)

func TestFindEntities(t *testing.T) {
	vocab := MustVocabulary(DefaultEntities)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"whole token", "thinking of adding reliance today", []string{"RELIANCE"}},
		{"cashtag without token", "loaded up on $tcs", []string{"TCS"}},
		{"cashtag glued to text", "bought$tcsyesterday", []string{"TCS"}},
		{"substring is not a token", "reliances are not a ticker", []string{}},
		{"duplicates count once", "itc itc itc $itc", []string{"ITC"}},
		{"several entities sorted", "nifty down but infy and tcs up", []string{"INFY", "NIFTY", "TCS"}},
		{"multi word run", "moved sip to parag parikh flexi cap fund", []string{"PARAG PARIKH FLEXI CAP"}},
		{"multi word needs token boundaries", "taxis bluechips rally", []string{}},
		{"multi word partial run", "axis is fine", []string{}},
		{"hyphenated symbol after normalization", "bajajauto results out", []string{"BAJAJ-AUTO"}},
		{"empty text", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindEntities(tt.text, vocab))
		})
	}
}

func TestFindEntitiesOnNormalizedText(t *testing.T) {
	vocab := MustVocabulary([]string{"RELIANCE", "TCS", "BAJAJ-AUTO"})

	got := FindEntities(textnorm.Normalize("Buy RELIANCE now! Also $TCS... and Bajaj-Auto?"), vocab)
	assert.Equal(t, []string{"BAJAJ-AUTO", "RELIANCE", "TCS"}, got)

	got = FindEntities(textnorm.Normalize("Nothing tracked in here https://tcs.com"), vocab)
	assert.Empty(t, got)
}

func TestNewVocabulary(t *testing.T) {
	v, err := NewVocabulary([]string{"tcs", " Infy ", "Axis Bluechip"})
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []string{"AXIS BLUECHIP", "INFY", "TCS"}, v.Symbols())
	assert.True(t, v.Contains("TCS"))
	assert.True(t, v.Contains("axis  bluechip"))
	assert.False(t, v.Contains("WIPRO"))

	_, err = NewVocabulary(nil)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = NewVocabulary([]string{"TCS", "tcs"})
	assert.ErrorContains(t, err, "duplicate entity")

	_, err = NewVocabulary([]string{"BAJAJ-AUTO", "BAJAJAUTO"})
	assert.ErrorContains(t, err, "duplicate entity")

	_, err = NewVocabulary([]string{"TCS", "500325"})
	assert.ErrorContains(t, err, "no matchable letters")
}

func TestDefaultEntitiesAreValid(t *testing.T) {
	v, err := NewVocabulary(DefaultEntities)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultEntities), v.Len())
}

type fakeInstruments struct {
	instruments kiteconnect.Instruments
	err         error
}

func (f fakeInstruments) GetInstrumentsByExchange(exchange string) (kiteconnect.Instruments, error) {
	return f.instruments, f.err
}

func TestCheckInstruments(t *testing.T) {
	vocab := MustVocabulary([]string{"RELIANCE", "TCS", "IPO", "NIFTY"})
	lister := fakeInstruments{instruments: kiteconnect.Instruments{
		{Tradingsymbol: "RELIANCE", Name: "RELIANCE INDUSTRIES"},
		{Tradingsymbol: "TCS", Name: "TATA CONSULTANCY SERV LT"},
		{Tradingsymbol: "NIFTY 50", Name: "NIFTY"},
	}}

	check, err := CheckInstruments(context.Background(), lister, "NSE", vocab)
	require.NoError(t, err)
	assert.Equal(t, []string{"NIFTY", "RELIANCE", "TCS"}, check.Listed)
	assert.Equal(t, []string{"IPO"}, check.Unlisted)

	_, err = CheckInstruments(context.Background(), fakeInstruments{err: errors.New("forbidden")}, "NSE", vocab)
	assert.ErrorContains(t, err, "forbidden")
}
