package app

import (
	"robot-models/internal/adapters"
	"robot-models/internal/ports"
)

type Service struct {
	Models ports.ModelSourcePort
	Plan   ports.PlanPort
}

func NewService() Service {
	return Service{
		Models: adapters.NewModelFileAdapter(),
		Plan:   adapters.NewMemoryPlanAdapter(),
	}
}
