package holdings

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains the Robinhood position source. It only reads the
// account: positions, instruments and quotes. Authentication is a bearer
// token obtained out of band; there is no login flow here.

const robinhood_token = "ROBINHOOD_TOKEN"

var robinhoodTokenFlag = flag.String("robinhood-token", "", "Robinhood API bearer token.\n If missing it will read the environment variable \""+robinhood_token+"\".")

// RobinhoodToken returns the configured API token, from the flag or the
// environment.
func RobinhoodToken() string {
	if *robinhoodTokenFlag == "" {
		*robinhoodTokenFlag = os.Getenv(robinhood_token)
	}
	return *robinhoodTokenFlag
}

const (
	robinhoodAPIURL    = "https://api.robinhood.com"
	robinhoodNummusURL = "https://nummus.robinhood.com"
)

// Robinhood implements PositionSource against the Robinhood REST API.
// Equity positions live on the main API host, crypto positions on the
// nummus host. Every call carries its own timeout via the shared client.
type Robinhood struct {
	APIURL    string
	NummusURL string
	Token     string
	Client    *http.Client
}

func NewRobinhood(token string) *Robinhood {
	return &Robinhood{
		APIURL:    robinhoodAPIURL,
		NummusURL: robinhoodNummusURL,
		Token:     token,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// EquityHoldings lists the nonzero equity positions and resolves each one
// into the semi-structured record shape the aggregator ingests: the
// position carries quantity and average cost, the instrument carries
// symbol, name and type, the quote carries the current price.
//
// A single unresolvable position is logged and skipped; only a failure to
// list the positions at all fails the call.
func (r *Robinhood) EquityHoldings() (map[string]RawEquity, error) {
	out := make(map[string]RawEquity)
	addr := r.APIURL + "/positions/?nonzero=true"
	for addr != "" {
		var jobj any
		if err := jwget(r.Client, addr, r.Token, &jobj); err != nil {
			return nil, fmt.Errorf("cannot list positions: %w", err)
		}
		results, err := jsonList(jobj, "$.results")
		if err != nil {
			return nil, fmt.Errorf("cannot parse positions: %w", err)
		}
		for _, item := range results {
			pos, ok := item.(map[string]any)
			if !ok {
				log.Printf("warning: skipping position that is not an object")
				continue
			}
			symbol, rec, err := r.equityRecord(pos)
			if err != nil {
				log.Printf("warning: skipping position: %v", err)
				continue
			}
			out[symbol] = rec
		}
		addr = jsonString(jobj, "$.next")
	}
	return out, nil
}

// equityRecord resolves one raw position into a (symbol, record) pair.
func (r *Robinhood) equityRecord(pos map[string]any) (string, RawEquity, error) {
	instrumentURL, _ := pos["instrument"].(string)
	if instrumentURL == "" {
		return "", nil, errors.New("position has no instrument")
	}
	var inst map[string]any
	if err := jwget(r.Client, instrumentURL, r.Token, &inst); err != nil {
		return "", nil, fmt.Errorf("cannot fetch instrument: %w", err)
	}
	symbol, _ := inst["symbol"].(string)
	if symbol == "" {
		return "", nil, fmt.Errorf("instrument %q has no symbol", instrumentURL)
	}
	var quote map[string]any
	if err := jwget(r.Client, r.APIURL+"/quotes/"+url.PathEscape(symbol)+"/", r.Token, &quote); err != nil {
		return "", nil, fmt.Errorf("cannot fetch quote for %q: %w", symbol, err)
	}
	name, _ := inst["simple_name"].(string)
	if name == "" {
		name, _ = inst["name"].(string)
	}
	return symbol, RawEquity{
		"quantity":          pos["quantity"],
		"average_buy_price": pos["average_buy_price"],
		"price":             quote["last_trade_price"],
		"name":              name,
		"type":              inst["type"],
	}, nil
}

// CryptoPositions lists the raw crypto positions from the nummus host.
func (r *Robinhood) CryptoPositions() ([]CryptoPosition, error) {
	var out []CryptoPosition
	addr := r.NummusURL + "/positions/"
	for addr != "" {
		var page struct {
			Next    string           `json:"next"`
			Results []CryptoPosition `json:"results"`
		}
		if err := jwget(r.Client, addr, r.Token, &page); err != nil {
			return nil, fmt.Errorf("cannot list crypto positions: %w", err)
		}
		out = append(out, page.Results...)
		addr = page.Next
	}
	return out, nil
}

// CryptoQuote fetches the current mark price for a currency code, quoted
// against the reporting currency.
func (r *Robinhood) CryptoQuote(code string) (CryptoQuote, error) {
	var q CryptoQuote
	addr := r.APIURL + "/marketdata/forex/quotes/" + url.PathEscape(code+reportingCurrency) + "/"
	if err := jwget(r.Client, addr, r.Token, &q); err != nil {
		return CryptoQuote{}, err
	}
	if q.MarkPrice == "" {
		return CryptoQuote{}, fmt.Errorf("no mark price for %q", code)
	}
	return q, nil
}

// jsonList extracts a list at a jsonpath.
func jsonList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is not a list", path)
	}
	return list, nil
}

// jsonString extracts a string at a jsonpath, or "" when absent or null.
func jsonString(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	s, _ := jval.(string)
	return s
}
