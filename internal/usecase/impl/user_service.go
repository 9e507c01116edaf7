package impl

import (
	"context"
	"log/slog"
	"maps"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/repository"
	"hbnb/internal/domain/service"
	"hbnb/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	store   repository.Storage
	records usecase.RecordService
	hasher  service.PasswordHasher
	logger  *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	Store   repository.Storage
	Records usecase.RecordService
	Hasher  service.PasswordHasher
	Logger  *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		store:   params.Store,
		records: params.Records,
		hasher:  params.Hasher,
		logger:  params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) List(ctx context.Context) ([]*entity.User, error) {
	return listRecords[*entity.User](ctx, srv.store)
}

func (srv *userService) Get(ctx context.Context, id string) (*entity.User, error) {
	return findRecord[*entity.User](ctx, srv.store, id)
}

func (srv *userService) Create(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(input.Email, hashed)
	user.FirstName = input.FirstName
	user.LastName = input.LastName

	if err := srv.records.Create(ctx, user); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("User created", slog.String("user_id", user.ID))

	return user, nil
}

// Update never changes the email. A password in attrs is replaced by its hash.
func (srv *userService) Update(ctx context.Context, id string, attrs usecase.Attributes) (*entity.User, error) {
	user, err := findRecord[*entity.User](ctx, srv.store, id)
	if err != nil {
		return nil, err
	}

	if raw, ok := attrs["password"]; ok {
		password, isString := raw.(string)
		if !isString {
			return nil, domainerrors.ErrValidationFailed.WithDetails("password must be a string")
		}
		hashed, err := srv.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		attrs = maps.Clone(attrs)
		attrs["password"] = hashed
	}

	return patchRecord(ctx, srv.records, user, attrs, "email")
}

func (srv *userService) Delete(ctx context.Context, id string) error {
	return deleteRecord[*entity.User](ctx, srv.store, srv.records, id)
}
