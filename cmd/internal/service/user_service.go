package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/domain/policy"
	cognitoclient "simpleguide/cmd/internal/infrastructure/aws/cognito"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type UserRepository interface {
	FindAll() ([]*entity.User, error)
	FindByID(id int64) (*entity.User, error)
	FindBySub(sub string) (*entity.User, error)
	FindActiveBySub(sub string) (*entity.User, error)
	FindActiveByEmail(email string) (*entity.User, error)
	Create(user *entity.User) error
	Save(user *entity.User) error
	Delete(user *entity.User) error
}

type DefaultUserService struct {
	UserRepo   UserRepository
	Validate   *validator.Validate
	Cognito    cognitoclient.CognitoInterface // nil when staff auth is not configured
	UserPolicy *policy.UserPolicy
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, cogClient cognitoclient.CognitoInterface, userPolicy *policy.UserPolicy) *DefaultUserService {
	return &DefaultUserService{
		UserRepo:   userRepo,
		Validate:   validate,
		Cognito:    cogClient,
		UserPolicy: userPolicy,
	}
}

func (u *DefaultUserService) GetUsers(actor *entity.User) ([]*contract.UserResponse, apierror.ErrorResponse) {
	users, err := u.UserRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch users: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user, actor)
	}
	return resp, nil
}

func (u *DefaultUserService) GetUser(actor *entity.User, rawID string) (*contract.UserResponse, apierror.ErrorResponse) {
	user, apierr := u.fetchUser(actor, rawID)
	if apierr != nil {
		return nil, apierr
	}

	if user == nil {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user, actor), nil
}

// CreateUser provisions a staff account on Cognito, which mails the temporary
// password, and then registers it locally. The Cognito account is removed
// again if the local row cannot be written.
func (u *DefaultUserService) CreateUser(ctx context.Context, actor *entity.User, req *contract.CreateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	if errs := collectErrors(u.Validate, req); !errs.Empty() {
		return nil, errs
	}

	perms := entity.PermissionStaff
	if req.Perms != nil {
		perms = entity.Permission(*req.Perms)
	}

	if perr := u.UserPolicy.CanCreateUser(actor, perms); perr != nil {
		return nil, perr
	}

	email := strings.ToLower(req.Email)
	found, err := u.UserRepo.FindActiveByEmail(email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found != nil {
		return nil, apierror.UserAlreadyExistsError
	}

	if u.Cognito == nil {
		return nil, apierror.ServiceUnavailable
	}

	sub, err := u.Cognito.AdminCreateUser(ctx, &cognitoclient.User{Email: email, TemporaryPassword: req.TemporaryPassword})
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}

	now := utils.NowUTC()
	user := &entity.User{
		SubUUID:     sub,
		Username:    req.Username,
		Email:       email,
		Permissions: perms,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.UserRepo.Create(user); err != nil {
		if derr := u.Cognito.AdminDeleteUser(ctx, email); derr != nil {
			log.Errorf("failed to revert cognito user %s. INCONSISTENCY RISK: %v", email, derr)
		}
		return nil, mapRepoError("create user", err)
	}
	return toUserResponse(user, actor), nil
}

func (u *DefaultUserService) UpdateUser(actor *entity.User, targetID string, req *contract.UpdateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	if errs := collectErrors(u.Validate, req); !errs.Empty() {
		return nil, errs
	}

	target, apierr := u.fetchUser(actor, targetID)
	if apierr != nil {
		return nil, apierr
	}

	if target == nil {
		return nil, apierror.NotFoundError
	}

	updater := &userUpdater{
		actor:  actor,
		target: target,
		policy: u.UserPolicy,
	}

	updater.setUsername(req.Username)
	updater.setPermissions(req.Perms)
	updater.setActive(req.Active)

	if updater.err != nil {
		return nil, updater.err
	}

	if updater.dirty {
		target.UpdatedAt = utils.NowUTC()
		if err := u.UserRepo.Save(target); err != nil {
			log.Errorf("actor %s failed to update user %d: %v", actor.SubUUID, target.ID, err)
			return nil, apierror.InternalServerError
		}
	}
	return toUserResponse(target, actor), nil
}

// DeleteUser removes a staff account that no longer owns any record.
func (u *DefaultUserService) DeleteUser(ctx context.Context, actor *entity.User, targetID string) apierror.ErrorResponse {
	target, apierr := u.fetchUser(actor, targetID)
	if apierr != nil {
		return apierr
	}

	if target == nil {
		return apierror.NotFoundError
	}

	if perr := u.UserPolicy.CanDeleteUser(actor, target); perr != nil {
		return perr
	}

	if err := u.UserRepo.Delete(target); err != nil {
		return mapRepoError("delete user", err)
	}

	if u.Cognito == nil {
		return nil
	}

	if err := u.Cognito.AdminDeleteUser(ctx, target.Email); err != nil {
		log.Warnf("user %d deleted locally but not on cognito: %v", target.ID, err)
	}
	return nil
}

func (u *DefaultUserService) Login(ctx context.Context, req *contract.UserLoginRequest) (*contract.UserLoginResponse, apierror.ErrorResponse) {
	if errs := collectErrors(u.Validate, req); !errs.Empty() {
		return nil, errs
	}

	if u.Cognito == nil {
		return nil, apierror.ServiceUnavailable
	}

	email := strings.ToLower(req.Email)
	user, err := u.UserRepo.FindActiveByEmail(email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.IDPUserNotFoundError
	}

	auth, err := u.Cognito.SignIn(ctx, &cognitoclient.UserLogin{Email: email, Password: req.Password})
	if errors.Is(err, cognitoclient.ErrNewPasswordRequired) {
		return nil, apierror.IDPNewPasswordRequiredError
	}

	if err != nil {
		return nil, utils.MapCognitoError(err)
	}
	return &contract.UserLoginResponse{AccessToken: auth.AccessToken, IDToken: auth.IDToken}, nil
}

// CreateSuperuser registers the first administrator for an account that
// already exists on Cognito. It is only reachable from the command line.
func (u *DefaultUserService) CreateSuperuser(sub, username, email string) (*entity.User, error) {
	existing, err := u.UserRepo.FindBySub(sub)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, errors.New("a user with this sub already exists")
	}

	now := utils.NowUTC()
	user := &entity.User{
		SubUUID:     sub,
		Username:    username,
		Email:       strings.ToLower(email),
		Permissions: entity.PermissionAdministrator,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// fetchUser resolves "@me" to the actor and anything else to a user id.
func (u *DefaultUserService) fetchUser(actor *entity.User, rawID string) (*entity.User, apierror.ErrorResponse) {
	if rawID == "@me" {
		return actor, nil
	}

	id, apierr := ParseID(rawID)
	if apierr != nil {
		return nil, apierr
	}

	user, err := u.UserRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to find user (%s) by id: %v", rawID, err)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

func toUserResponse(user, requester *entity.User) *contract.UserResponse {
	resp := &contract.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Perms:     int64(user.Permissions),
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}

	if requester.ID == user.ID || requester.Permissions.HasEffective(entity.PermissionManageUsers) {
		resp.Email = user.Email
		resp.Active = &user.Active
	}
	return resp
}
