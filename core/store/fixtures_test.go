package store

import (
	"dex-wiki/core/models"
	"dex-wiki/core/models/modeltest"
)

func moveFixture(name string) *models.Move {
	return modeltest.Move(name, 33)
}

func itemFixture(name string) *models.Item {
	return modeltest.Item(name, 17)
}
