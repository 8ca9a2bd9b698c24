// Package source loads minting snapshots from their JSON document.
//
// Objects are walked with gjson so player and transaction maps keep the
// order they have in the document.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/okian/mintboard/internal/domain/model"
	"github.com/tidwall/gjson"
)

// Document keys.
const (
	rootKey            = "HeroMinted"
	keyTotalHeroes     = "total_hero_minted"
	keyTotalSui        = "total_sui_paid"
	keyTotalPaidHeroes = "total_paid_hero_minted"
	keyWeekly          = "weekly_hero_minted"
	keyPlayerHeroes    = "player_hero_minted"
	keyPlayerSui       = "player_sui_paid_chart"
	keyTxTimes         = "tx_time_chart"
	keyPhaseTimes      = "phase_time_chart"
	keySuiPaidAmounts  = "sui_paid_amount_chart"
	keyEventDigest     = "digest"
	keyEventHeroID     = "hero_id"
	keyEventTimestamp  = "timestamp"
	keyEventPaid       = "is_paid"
	keyEventPhase      = "phase"
	keyAmount          = "amount"
	keyWeekStartTs     = "weekStartTimestamp"
	keyWeekEndTs       = "weekEndTimestamp"
	keyWeekStart       = "weekStart"
	keyWeekEnd         = "weekEnd"
	keyWeekCount       = "count"
	keyWeekNumber      = "weekNumber"
)

// ReadFile loads and parses the snapshot stored at path.
func ReadFile(ctx context.Context, path string) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Parse decodes a snapshot document. Both the bare object and one wrapped
// in {"HeroMinted": ...} are accepted.
func Parse(data []byte) (*model.Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, malformed("$", "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if wrapped := root.Get(rootKey); wrapped.Exists() {
		root = wrapped
	}
	if !root.IsObject() {
		return nil, malformed("$", "expected an object")
	}

	snap := &model.Snapshot{Fingerprint: Fingerprint(data)}
	var err error

	if snap.TotalHeroMinted, err = intField(root, keyTotalHeroes, keyTotalHeroes); err != nil {
		return nil, err
	}
	if snap.TotalSuiPaid, err = floatField(root, keyTotalSui, keyTotalSui); err != nil {
		return nil, err
	}
	if snap.TotalPaidHeroMinted, err = intField(root, keyTotalPaidHeroes, keyTotalPaidHeroes); err != nil {
		return nil, err
	}
	if snap.Weekly, err = parseWeekly(root); err != nil {
		return nil, err
	}
	if snap.PlayerEvents, err = parsePlayerEvents(root); err != nil {
		return nil, err
	}
	if snap.PlayerSuiPaid, err = parsePlayerSui(root); err != nil {
		return nil, err
	}
	if snap.TxTimes, err = parseTxTimes(root); err != nil {
		return nil, err
	}
	if snap.PhaseTimes, err = parsePhaseTimes(root); err != nil {
		return nil, err
	}
	if snap.SuiPaidAmounts, err = parseSuiPaidAmounts(root); err != nil {
		return nil, err
	}

	snap.Index()
	return snap, nil
}

// Fingerprint is the hex SHA-256 of the raw document.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func parseWeekly(root gjson.Result) ([]model.WeeklyData, error) {
	arr, err := arrayField(root, keyWeekly)
	if err != nil {
		return nil, err
	}
	out := make([]model.WeeklyData, 0, len(arr))
	for i, w := range arr {
		path := fmt.Sprintf("%s[%d]", keyWeekly, i)
		if !w.IsObject() {
			return nil, malformed(path, "expected an object")
		}
		var wd model.WeeklyData
		if wd.WeekStartTimestamp, err = intField(w, keyWeekStartTs, path+"."+keyWeekStartTs); err != nil {
			return nil, err
		}
		if wd.WeekEndTimestamp, err = intField(w, keyWeekEndTs, path+"."+keyWeekEndTs); err != nil {
			return nil, err
		}
		if wd.Count, err = intField(w, keyWeekCount, path+"."+keyWeekCount); err != nil {
			return nil, err
		}
		number, err := intField(w, keyWeekNumber, path+"."+keyWeekNumber)
		if err != nil {
			return nil, err
		}
		wd.WeekNumber = int(number)
		wd.WeekStart = w.Get(keyWeekStart).String()
		wd.WeekEnd = w.Get(keyWeekEnd).String()
		out = append(out, wd)
	}
	return out, nil
}

func parsePlayerEvents(root gjson.Result) ([]model.PlayerEvents, error) {
	obj, err := objectField(root, keyPlayerHeroes)
	if err != nil {
		return nil, err
	}
	var (
		out  []model.PlayerEvents
		seen = make(map[string]int)
		perr error
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		address := key.String()
		path := keyPlayerHeroes + "." + address
		if !value.IsArray() {
			perr = malformed(path, "expected an array")
			return false
		}
		events := make([]model.MintEvent, 0, len(value.Array()))
		for i, ev := range value.Array() {
			e, err := parseEvent(ev, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				perr = err
				return false
			}
			events = append(events, e)
		}
		// A repeated address extends the first occurrence.
		if i, ok := seen[address]; ok {
			out[i].Events = append(out[i].Events, events...)
			return true
		}
		seen[address] = len(out)
		out = append(out, model.PlayerEvents{Address: address, Events: events})
		return true
	})
	return out, perr
}

func parseEvent(ev gjson.Result, path string) (model.MintEvent, error) {
	if !ev.IsObject() {
		return model.MintEvent{}, malformed(path, "expected an object")
	}
	ts, err := intField(ev, keyEventTimestamp, path+"."+keyEventTimestamp)
	if err != nil {
		return model.MintEvent{}, err
	}
	phase, err := intField(ev, keyEventPhase, path+"."+keyEventPhase)
	if err != nil {
		return model.MintEvent{}, err
	}
	paid := ev.Get(keyEventPaid)
	if paid.Exists() && !paid.IsBool() {
		return model.MintEvent{}, malformed(path+"."+keyEventPaid, "expected a boolean")
	}
	return model.MintEvent{
		Digest:      ev.Get(keyEventDigest).String(),
		HeroID:      ev.Get(keyEventHeroID).String(),
		TimestampMs: ts,
		IsPaid:      paid.Bool(),
		Phase:       int(phase),
	}, nil
}

func parsePlayerSui(root gjson.Result) ([]model.PlayerAmount, error) {
	obj, err := objectField(root, keyPlayerSui)
	if err != nil {
		return nil, err
	}
	var (
		out  []model.PlayerAmount
		perr error
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		amount, err := finite(value, keyPlayerSui+"."+key.String())
		if err != nil {
			perr = err
			return false
		}
		out = append(out, model.PlayerAmount{Address: key.String(), Amount: amount})
		return true
	})
	return out, perr
}

func parseTxTimes(root gjson.Result) ([]model.TxTime, error) {
	obj, err := objectField(root, keyTxTimes)
	if err != nil {
		return nil, err
	}
	var (
		out  []model.TxTime
		perr error
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			perr = malformed(keyTxTimes+"."+key.String(), "expected a number")
			return false
		}
		out = append(out, model.TxTime{TxID: key.String(), TimestampMs: value.Int()})
		return true
	})
	return out, perr
}

func parsePhaseTimes(root gjson.Result) ([]model.PhaseTimes, error) {
	obj, err := objectField(root, keyPhaseTimes)
	if err != nil {
		return nil, err
	}
	var (
		out  []model.PhaseTimes
		perr error
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		path := keyPhaseTimes + "." + key.String()
		phase, err := strconv.Atoi(key.String())
		if err != nil {
			perr = malformed(path, "phase key is not an integer")
			return false
		}
		if !value.IsArray() {
			perr = malformed(path, "expected an array")
			return false
		}
		items := value.Array()
		ts := make([]int64, len(items))
		for i, v := range items {
			if v.Type != gjson.Number {
				perr = malformed(fmt.Sprintf("%s[%d]", path, i), "expected a number")
				return false
			}
			ts[i] = v.Int()
		}
		out = append(out, model.PhaseTimes{Phase: phase, TimestampsMs: ts})
		return true
	})
	return out, perr
}

func parseSuiPaidAmounts(root gjson.Result) ([]model.SuiPaidAmount, error) {
	arr, err := arrayField(root, keySuiPaidAmounts)
	if err != nil {
		return nil, err
	}
	out := make([]model.SuiPaidAmount, 0, len(arr))
	for i, item := range arr {
		path := fmt.Sprintf("%s[%d]", keySuiPaidAmounts, i)
		if !item.IsObject() {
			return nil, malformed(path, "expected an object")
		}
		amount, err := floatField(item, keyAmount, path+"."+keyAmount)
		if err != nil {
			return nil, err
		}
		ts, err := intField(item, keyEventTimestamp, path+"."+keyEventTimestamp)
		if err != nil {
			return nil, err
		}
		out = append(out, model.SuiPaidAmount{Amount: amount, TimestampMs: ts})
	}
	return out, nil
}

func field(obj gjson.Result, key, path string) (gjson.Result, error) {
	r := obj.Get(gjson.Escape(key))
	if !r.Exists() {
		return r, malformed(path, "missing")
	}
	return r, nil
}

func intField(obj gjson.Result, key, path string) (int64, error) {
	r, err := field(obj, key, path)
	if err != nil {
		return 0, err
	}
	if r.Type != gjson.Number {
		return 0, malformed(path, "expected a number")
	}
	return r.Int(), nil
}

func floatField(obj gjson.Result, key, path string) (float64, error) {
	r, err := field(obj, key, path)
	if err != nil {
		return 0, err
	}
	return finite(r, path)
}

// finite reads r as a float64 that decimal arithmetic can take. Literals
// past the float64 range decode to an infinity and are rejected.
func finite(r gjson.Result, path string) (float64, error) {
	if r.Type != gjson.Number {
		return 0, malformed(path, "expected a number")
	}
	v := r.Float()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, malformed(path, "number out of range")
	}
	return v, nil
}

func objectField(obj gjson.Result, key string) (gjson.Result, error) {
	r, err := field(obj, key, key)
	if err != nil {
		return r, err
	}
	if !r.IsObject() {
		return r, malformed(key, "expected an object")
	}
	return r, nil
}

func arrayField(obj gjson.Result, key string) ([]gjson.Result, error) {
	r, err := field(obj, key, key)
	if err != nil {
		return nil, err
	}
	if !r.IsArray() {
		return nil, malformed(key, "expected an array")
	}
	return r.Array(), nil
}
