package repository_test

import (
	"lost-and-found/internal/repository"
	"lost-and-found/internal/repository/memory"
	"lost-and-found/internal/service"
)

var (
	_ service.ItemStore         = (*repository.ItemRepository)(nil)
	_ service.ClaimStore        = (*repository.ClaimRepository)(nil)
	_ service.ActivityStore     = (*repository.ActivityRepository)(nil)
	_ service.LoginAttemptStore = (*repository.LoginAttemptRepository)(nil)
	_ service.UserStore         = (*repository.UserRepository)(nil)
	_ service.TokenStore        = (*repository.TokenRepository)(nil)

	_ service.ItemStore         = (*memory.ItemStore)(nil)
	_ service.ClaimStore        = (*memory.ClaimStore)(nil)
	_ service.ActivityStore     = (*memory.ActivityStore)(nil)
	_ service.LoginAttemptStore = (*memory.LoginAttemptStore)(nil)
	_ service.UserStore         = (*memory.UserStore)(nil)
	_ service.TokenStore        = (*memory.TokenStore)(nil)
)
