package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/pkg/models"
	"github.com/kfglabs/directory/pkg/repository"
)

type EmployeesHandler struct {
	employeeRepo repository.EmployeeRepo
}

func NewEmployeesHandler(er repository.EmployeeRepo) *EmployeesHandler {
	return &EmployeesHandler{employeeRepo: er}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperror.Invalid("invalid " + name)
	}
	return id, nil
}

func (h *EmployeesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "employeeNew", body); err != nil {
		writeError(w, err)
		return
	}

	var e models.Employee
	if err := json.Unmarshal(body, &e); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}

	created, err := h.employeeRepo.CreateEmployee(r.Context(), &e)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"employee": created}, http.StatusCreated)
}

func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := map[string]any{}
	var f models.EmployeeFilter
	for key, dst := range map[string]**string{
		"firstName":      &f.FirstName,
		"lastName":       &f.LastName,
		"email":          &f.Email,
		"department":     &f.Department,
		"officeLocation": &f.OfficeLocation,
	} {
		if q.Has(key) {
			v := q.Get(key)
			filters[key] = v
			*dst = &v
		}
	}
	// unrecognized query keys are rejected by the schema
	for key := range q {
		if _, ok := filters[key]; !ok {
			filters[key] = q.Get(key)
		}
	}
	if err := validateQuery(r.Context(), "employeeSearch", filters); err != nil {
		writeError(w, err)
		return
	}

	employees, err := h.employeeRepo.SearchEmployees(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"employees": employees}, http.StatusOK)
}

func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	e, err := h.employeeRepo.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"employee": e}, http.StatusOK)
}

func (h *EmployeesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "employeeUpdate", body); err != nil {
		writeError(w, err)
		return
	}

	var p models.EmployeePatch
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}

	e, err := h.employeeRepo.UpdateEmployee(r.Context(), id, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"employee": e}, http.StatusOK)
}

func (h *EmployeesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.employeeRepo.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"deleted": id}, http.StatusOK)
}

func (h *EmployeesHandler) Skills(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	skills, err := h.employeeRepo.SkillsOf(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"skills": skills}, http.StatusOK)
}

func (h *EmployeesHandler) AssignSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	skillID, err := pathID(r, "skillID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.employeeRepo.AssignSkill(r.Context(), id, skillID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"assigned": map[string]int64{"employeeId": id, "skillId": skillID}}, http.StatusCreated)
}

func (h *EmployeesHandler) UnassignSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	skillID, err := pathID(r, "skillID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.employeeRepo.UnassignSkill(r.Context(), id, skillID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"deleted": map[string]int64{"employeeId": id, "skillId": skillID}}, http.StatusOK)
}
