package model

// Airplane 飛機模型
type Airplane struct {
	ID             int    `json:"id" db:"id"`
	TailNumber     string `json:"tail_number" db:"tail_number"`
	Model          string `json:"model" db:"model"`
	Capacity       int    `json:"capacity" db:"capacity"`
	ProductionYear int    `json:"production_year" db:"production_year"`
	Status         bool   `json:"status" db:"status"`
}

type UpdateAirplaneParams struct {
	TailNumber     *string
	Model          *string
	Capacity       *int
	ProductionYear *int
	Status         *bool
}

// IsEmpty reports whether no field is being changed.
func (p UpdateAirplaneParams) IsEmpty() bool {
	return p.TailNumber == nil && p.Model == nil && p.Capacity == nil &&
		p.ProductionYear == nil && p.Status == nil
}

// CreateAirplaneRequest 建立飛機請求
type CreateAirplaneRequest struct {
	TailNumber     string `json:"tail_number" binding:"required,max=10"`
	Model          string `json:"model" binding:"required,max=50"`
	Capacity       int    `json:"capacity" binding:"required,gt=0"`
	ProductionYear int    `json:"production_year" binding:"required,gt=0"`
	Status         *bool  `json:"status"`
}

func (r CreateAirplaneRequest) ToAirplane() *Airplane {
	status := true
	if r.Status != nil {
		status = *r.Status
	}
	return &Airplane{
		TailNumber:     r.TailNumber,
		Model:          r.Model,
		Capacity:       r.Capacity,
		ProductionYear: r.ProductionYear,
		Status:         status,
	}
}

// UpdateAirplaneRequest 部分更新；未提供的欄位維持原值
type UpdateAirplaneRequest struct {
	TailNumber     *string `json:"tail_number" binding:"omitempty,min=1,max=10"`
	Model          *string `json:"model" binding:"omitempty,min=1,max=50"`
	Capacity       *int    `json:"capacity" binding:"omitempty,gt=0"`
	ProductionYear *int    `json:"production_year" binding:"omitempty,gt=0"`
	Status         *bool   `json:"status"`
}

func (r UpdateAirplaneRequest) ToParams() UpdateAirplaneParams {
	return UpdateAirplaneParams(r)
}
