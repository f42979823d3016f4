package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/CvitoyBamp/panelsynth/internal/customerror"
	"github.com/CvitoyBamp/panelsynth/internal/jwt"
	"github.com/CvitoyBamp/panelsynth/internal/storage"
	"github.com/CvitoyBamp/panelsynth/internal/synth"
	"github.com/matthewhartstonge/argon2"
	"io"
	"log"
	"net/http"
	"strconv"
)

const (
	runsLimit = 100
	maxRows   = 1_000_000
)

type tokenRequest struct {
	Key string `json:"key"`
}

func (bs *BackendServer) tokenHandler(w http.ResponseWriter, r *http.Request) {

	if bs.Auth == nil || bs.cfg.APIKeyHash == "" {
		http.Error(w, "Token issuing is not configured.", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("Bad request body, error: ", err.Error())
		return
	}

	var req tokenRequest
	errUn := json.Unmarshal(body, &req)
	if errUn != nil {
		http.Error(w, errUn.Error(), http.StatusBadRequest)
		log.Println("Impossible to unmarshal, error: ", errUn.Error())
		return
	}

	ok, errVerify := argon2.VerifyEncoded([]byte(req.Key), []byte(bs.cfg.APIKeyHash))
	if errVerify != nil || !ok {
		http.Error(w, customerror.ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	token, errJWT := jwt.CreateJWTToken(bs.Auth, "api-key")
	if errJWT != nil {
		http.Error(w, errJWT.Error(), http.StatusBadGateway)
		log.Println("Can't create Bearer token", errJWT.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	errResp := json.NewEncoder(w).Encode(map[string]string{"token": token})
	if errResp != nil {
		log.Println("Error while response after token request, error: ", errResp.Error())
	}
}

// datasetHandler answers with the CSV a persisted run would contain.
// Query parameters seed, n_subjects, n_periods and stream fall back to the
// service configuration.
func (bs *BackendServer) datasetHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seed, err := queryUint(q.Get("seed"), bs.cfg.Seed, 32)
	if err != nil {
		http.Error(w, fmt.Sprintf("seed: %v", err), http.StatusBadRequest)
		return
	}
	subjects, err := queryPositive(q.Get("n_subjects"), bs.cfg.Subjects)
	if err != nil {
		http.Error(w, fmt.Sprintf("n_subjects: %v", err), http.StatusBadRequest)
		return
	}
	periods, err := queryPositive(q.Get("n_periods"), bs.cfg.Periods)
	if err != nil {
		http.Error(w, fmt.Sprintf("n_periods: %v", err), http.StatusBadRequest)
		return
	}
	if subjects > maxRows/periods {
		http.Error(w, fmt.Sprintf("table is limited to %d rows", maxRows), http.StatusRequestEntityTooLarge)
		return
	}
	kind := bs.cfg.StreamKind()
	if s := q.Get("stream"); s != "" {
		if kind, err = synth.ParseStreamKind(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	table := synth.GenerateWith(kind, uint32(seed), subjects, periods)

	var buf bytes.Buffer
	if errWrite := storage.WriteCSV(&buf, table); errWrite != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		log.Println("Can't serialize dataset, error: ", errWrite.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_censored.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, errResp := buf.WriteTo(w); errResp != nil {
		log.Println("Error while sending dataset, error: ", errResp.Error())
	}
}

func (bs *BackendServer) runsHandler(w http.ResponseWriter, r *http.Request) {

	if bs.DB == nil {
		http.Error(w, customerror.ErrNoRegistry.Error(), http.StatusServiceUnavailable)
		return
	}

	runs, errRuns := bs.DB.ListRuns(r.Context(), runsLimit)
	if errRuns != nil {
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		log.Println("Can't list runs, error: ", errRuns.Error())
		return
	}

	if runs == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	body, errMarshal := json.Marshal(runs)
	if errMarshal != nil {
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, errResp := w.Write(body)
	if errResp != nil {
		log.Println("Error while response with runs, error: ", errResp.Error())
	}
}

func queryUint(s string, def uint64, bits int) (uint64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseUint(s, 10, bits)
}

func queryPositive(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", v)
	}
	return v, nil
}
