package dashboard

type FiltersRequest struct {
	Approvals *string `json:"approvals"`
	Enquiries *string `json:"enquiries"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
