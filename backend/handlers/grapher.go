package handlers

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"trust-atlas-web/backend/viewstate"

	"github.com/gofiber/fiber/v2"
)

// Mutation op keys. These are consumed server-side and never appear in
// the canonical URL the client is redirected to.
const (
	opAdd          = "add"
	opRemove       = "remove"
	opSetCountries = "set_countries"
	opSetPillar    = "set_pillar"
	opSetFrom      = "set_from"
	opSetTo        = "set_to"
)

var opKeys = []string{opAdd, opRemove, opSetCountries, opSetPillar, opSetFrom, opSetTo}

// Grapher serves the chart page. When the URL carries mutation ops
// (add=FRA, set_pillar=media, ...) the ops are applied through the
// view-state codec and the client is redirected to the canonical URL,
// with unrelated query parameters preserved. One navigation per call.
// GET /grapher
func (h *Handler) Grapher(c *fiber.Ctx) error {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		q = url.Values{}
	}

	if hasMutationOp(q) {
		merged := applyMutations(q)
		target := "/grapher"
		if encoded := merged.Encode(); encoded != "" {
			target += "?" + encoded
		}
		return c.Redirect(target, http.StatusFound)
	}

	return c.SendFile(filepath.Join(h.FrontendDir, "index.html"))
}

func hasMutationOp(q url.Values) bool {
	for _, k := range opKeys {
		if q.Has(k) {
			return true
		}
	}
	return false
}

// applyMutations runs the requested view-state mutations, then strips
// the op keys so they do not survive into the canonical URL.
func applyMutations(q url.Values) url.Values {
	view := viewstate.Parse(q)

	if codes := q.Get(opSetCountries); q.Has(opSetCountries) {
		var list []string
		if codes != "" {
			list = splitCodes(codes)
		}
		q = viewstate.SetCountries(q, list)
	}
	if code := q.Get(opAdd); code != "" {
		q = viewstate.AddCountry(q, code)
	}
	if code := q.Get(opRemove); code != "" {
		q = viewstate.RemoveCountry(q, code)
	}
	if p := q.Get(opSetPillar); p != "" {
		q = viewstate.SetPillar(q, p)
	}
	if q.Has(opSetFrom) || q.Has(opSetTo) {
		from, to := view.From, view.To
		if q.Has(opSetFrom) {
			from = parseOptionalYear(q.Get(opSetFrom))
		}
		if q.Has(opSetTo) {
			to = parseOptionalYear(q.Get(opSetTo))
		}
		q = viewstate.SetTimeRange(q, from, to)
	}

	for _, k := range opKeys {
		q.Del(k)
	}
	return q
}

func splitCodes(csv string) []string {
	var out []string
	for _, tok := range strings.Split(csv, ",") {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func parseOptionalYear(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
