package grades

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/markbook/core/history"
)

// NewRunsHandler lists recorded runs. Query parameters: since and until
// (RFC3339), input, status and limit.
func NewRunsHandler(store history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := r.URL.Query()
		q := history.Query{Input: v.Get("input"), Status: v.Get("status")}
		var err error
		if s := v.Get("since"); s != "" {
			if q.Start, err = time.Parse(time.RFC3339, s); err != nil {
				respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid since: " + err.Error()})
				return
			}
		}
		if s := v.Get("until"); s != "" {
			if q.End, err = time.Parse(time.RFC3339, s); err != nil {
				respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid until: " + err.Error()})
				return
			}
		}
		if s := v.Get("limit"); s != "" {
			if q.Limit, err = strconv.Atoi(s); err != nil || q.Limit < 0 {
				respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid limit"})
				return
			}
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			respondJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
			return
		}
		if records == nil {
			records = []history.RunRecord{}
		}
		respondJSON(w, http.StatusOK, records)
	}
}
