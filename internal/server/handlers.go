package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/engine"
	"github.com/piwi3910/SheetFit/internal/export"
	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/project"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// decode reads a JSON body into v and validates it. Broken JSON maps to
// ErrMalformedJSON, anything else unusable to ErrValidation.
func (s *Server) decode(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var (
			syntax *json.SyntaxError
			typ    *json.UnmarshalTypeError
		)
		switch {
		case errors.As(err, &syntax), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return &ErrMalformedJSON{Cause: err}
		case errors.As(err, &typ):
			return &ErrValidation{Field: typ.Field, Message: "expected " + typ.Type.String()}
		default:
			return &ErrValidation{Field: "body", Message: err.Error()}
		}
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ErrValidation{Field: fe.Namespace(), Message: "failed on the '" + fe.Tag() + "' rule"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func (s *Server) optimizerFor(req OptimizeRequest) *engine.Optimizer {
	settings := s.settings
	if req.AllowRotation != nil {
		settings.AllowRotation = *req.AllowRotation
	}
	if req.WastageTolerance != nil {
		settings.WastageTolerance = *req.WastageTolerance
	}
	return engine.New(settings)
}

func (s *Server) candidatesFor(req OptimizeRequest) []model.SheetCandidate {
	var candidates []model.SheetCandidate
	if len(req.Candidates) > 0 {
		candidates = make([]model.SheetCandidate, len(req.Candidates))
		for i, c := range req.Candidates {
			candidates[i] = c.Candidate()
		}
	} else {
		candidates = s.candidates()
	}

	if req.Quality != nil {
		f := *req.Quality
		if f.GSMTolerance == 0 {
			f.GSMTolerance = s.app.GSMTolerance
		}
		candidates = engine.FilterCandidates(candidates, f)
	}
	return candidates
}

func (s *Server) optimize(req OptimizeRequest) model.OptimizeResult {
	return s.optimizerFor(req).Optimize(req.Piece.Spec(), req.RequestedQuantity, s.candidatesFor(req))
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}

	var req OptimizeRequest
	if err := s.decode(r, &req); err != nil {
		s.werr(w, e.wrap(err, "optimize: decoding request"), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.optimize(req))
}

func (s *Server) handleOptimizeBatch(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}

	var req BatchRequest
	if err := s.decode(r, &req); err != nil {
		s.werr(w, e.wrap(err, "batch: decoding request"), err.Error())
		return
	}

	results := make([]model.OptimizeResult, len(req.Jobs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.app.MaxConcurrent)
	for i, job := range req.Jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.optimize(job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.werr(w, e.wrap(err, "batch: evaluating jobs"), "batch cancelled")
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results})
}

func (s *Server) handleOptimizeExport(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}

	var req OptimizeRequest
	if err := s.decode(r, &req); err != nil {
		s.werr(w, e.wrap(err, "export: decoding request"), err.Error())
		return
	}

	result := s.optimize(req)
	if result.Empty() {
		err := &ErrValidation{Field: "piece", Message: "no candidate sheet holds the piece"}
		s.werr(w, e.from(err), err.Error())
		return
	}

	var buf bytes.Buffer
	job := export.Job{Piece: req.Piece.Spec(), RequestedQuantity: req.RequestedQuantity}
	if err := export.WriteSuggestionsXLSX(&buf, job, result); err != nil {
		s.werr(w, e.wrap(err, "export: writing workbook"), "could not build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="sheetfit-suggestions.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, &buf); err != nil {
		klog.Errorf("%v\texport: streaming workbook: %v", e.id(), err)
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}

	var req OptimizeRequest
	if err := s.decode(r, &req); err != nil {
		s.werr(w, e.wrap(err, "compare: decoding request"), err.Error())
		return
	}

	scenarios := engine.BuildDefaultScenarios(s.optimizerFor(req).Settings)
	results := engine.CompareScenarios(scenarios, req.Piece.Spec(), req.RequestedQuantity, s.candidatesFor(req))
	s.jsonResponse(w, http.StatusOK, CompareResponse{Scenarios: results})
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}

	var req PackRequest
	if err := s.decode(r, &req); err != nil {
		s.werr(w, e.wrap(err, "pack: decoding request"), err.Error())
		return
	}

	settings := s.settings.Pack
	if req.Gutter != nil {
		settings.Gutter = *req.Gutter
	}
	if req.Margin != nil {
		settings.Margin = *req.Margin
	}
	rotate := s.settings.AllowRotation
	if req.AllowRotation != nil {
		rotate = *req.AllowRotation
	}

	result := engine.NewPacker(settings).CountFittingCopies(req.Piece, req.Sheet, rotate)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleInventory(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	inv := model.Inventory{Sheets: append([]model.StockItem(nil), s.inventory.Sheets...)}
	s.mu.RUnlock()

	if inv.Sheets == nil {
		inv.Sheets = []model.StockItem{}
	}
	s.jsonResponse(w, http.StatusOK, inv)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}
	jobID := r.PathValue("id")

	if s.selections == nil {
		s.werr(w, e.text("selection: no job selection store configured"), "job selections unavailable")
		return
	}

	sel, err := s.selections.Get(jobID)
	if err != nil {
		if errors.Is(err, project.ErrSelectionNotFound) {
			err = &ErrNotFound{Resource: "selection", ID: jobID}
		}
		s.werr(w, e.wrap(err, "selection: loading"), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sel)
}

func (s *Server) handleSaveSelection(w http.ResponseWriter, r *http.Request) {
	e := errid{reqid: getid(r)}
	jobID := r.PathValue("id")

	if s.selections == nil {
		s.werr(w, e.text("selection: no job selection store configured"), "job selections unavailable")
		return
	}

	var req SelectionRequest
	if err := s.decode(r, &req); err != nil {
		s.werr(w, e.wrap(err, "selection: decoding request"), err.Error())
		return
	}

	candidates := s.candidates()
	result := engine.New(s.settings).Optimize(req.Piece.Spec(), req.RequestedQuantity, candidates)

	var chosen *model.Suggestion
	for i := range result.Suggestions {
		if result.Suggestions[i].CandidateID == req.CandidateID {
			chosen = &result.Suggestions[i]
			break
		}
	}
	if chosen == nil {
		err := &ErrValidation{Field: "candidate_id", Message: "not in inventory or holds no copy of the piece"}
		s.werr(w, e.from(err), err.Error())
		return
	}

	sel := model.NewJobSelection(jobID, req.Piece.Spec().Dimension, req.RequestedQuantity, *chosen)
	if err := s.selections.Save(sel); err != nil {
		s.werr(w, e.wrap(err, "selection: saving"), "could not save selection")
		return
	}

	var estimate model.PurchaseEstimate
	for _, c := range candidates {
		if c.ID == chosen.CandidateID {
			estimate = model.EstimatePurchase(*chosen, c.UnitCost, s.app.SpoilagePercent)
			break
		}
	}

	s.jsonResponse(w, http.StatusCreated, SelectionResponse{Selection: sel, Purchase: estimate})
}
