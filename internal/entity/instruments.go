package entity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"forum-sentiment/internal/logger"
)

// InstrumentLister is the part of the Kite Connect client used to fetch the
// exchange instrument master.
type InstrumentLister interface {
	GetInstrumentsByExchange(exchange string) (kiteconnect.Instruments, error)
}

// NewKiteInstrumentLister returns an authenticated Kite Connect client
func NewKiteInstrumentLister(apiKey, accessToken string) InstrumentLister {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return kc
}

// InstrumentCheck is the outcome of checking a vocabulary against an exchange
type InstrumentCheck struct {
	Exchange string
	Listed   []string
	Unlisted []string
}

// CheckInstruments compares every vocabulary symbol with the exchange's
// trading symbols (and instrument names, for index entries). Unlisted
// entries are not an error: fund names and issue types like IPO are
// expected to be absent. The result is informational.
func CheckInstruments(ctx context.Context, lister InstrumentLister, exchange string, vocab *Vocabulary) (*InstrumentCheck, error) {
	instruments, err := lister.GetInstrumentsByExchange(exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s instruments: %w", exchange, err)
	}

	known := make(map[string]struct{}, len(instruments)*2)
	for _, inst := range instruments {
		known[strings.ToUpper(inst.Tradingsymbol)] = struct{}{}
		if inst.Name != "" {
			known[strings.ToUpper(inst.Name)] = struct{}{}
		}
	}

	check := &InstrumentCheck{Exchange: exchange}
	for _, term := range vocab.Terms() {
		if _, ok := known[term.Symbol]; ok {
			check.Listed = append(check.Listed, term.Symbol)
		} else {
			check.Unlisted = append(check.Unlisted, term.Symbol)
		}
	}
	sort.Strings(check.Listed)
	sort.Strings(check.Unlisted)

	logger.Info(ctx, "Vocabulary checked against instrument master",
		"exchange", exchange,
		"instruments", len(instruments),
		"listed", len(check.Listed),
		"unlisted", len(check.Unlisted),
	)
	if len(check.Unlisted) > 0 {
		logger.Warn(ctx, "Vocabulary entries not found on exchange", "exchange", exchange, "symbols", check.Unlisted)
	}

	return check, nil
}
