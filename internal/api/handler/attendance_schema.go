package handler

type clockRequest struct {
	Notes    string `json:"notes"`
	Location string `json:"location"`
}

type manualEntryRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeIn     string `json:"time_in" validate:"omitempty,datetime=15:04:05"`
	TimeOut    string `json:"time_out" validate:"omitempty,datetime=15:04:05"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

type overrideRequest struct {
	Status string `json:"status" validate:"required"`
}
