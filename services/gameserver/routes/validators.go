// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

var registerValidatorsOnce sync.Once

// registerValidators installs the custom binding validations on gin's
// validator engine. Idempotent; gin's engine is process-global.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("slotlabel", func(fl validator.FieldLevel) bool {
			return datatypes.SlotLabel(fl.Field().String()).Valid()
		})
	})
}
