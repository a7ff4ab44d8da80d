package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaaferHajji2/go-blog-api/internal/services"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date"`
}

type registerAccountRequest struct {
	Handle  string          `json:"handle" binding:"required"`
	Email   string          `json:"email" binding:"required"`
	Profile *profileRequest `json:"profile"`
}

func (req *profileRequest) toInput(c *gin.Context) (*types.ProfileInput, bool) {
	if req == nil {
		return nil, true
	}
	birthDate, ok := parseBirthDate(c, req.BirthDate)
	if !ok {
		return nil, false
	}
	return &types.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		BirthDate: birthDate,
	}, true
}

func (ah *AccountHandler) Register(c *gin.Context) {
	var req registerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}
	profile, ok := req.Profile.toInput(c)
	if !ok {
		return
	}

	account, err := ah.accountService.Register(c.Request.Context(), services.AccountInput{
		Handle: req.Handle,
		Email:  req.Email,
	}, profile)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, gin.H{"account": account})
}

func (ah *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := ah.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"account": account})
}

func (ah *AccountHandler) List(c *gin.Context) {
	page, pageSize, ok := parsePage(c)
	if !ok {
		return
	}
	result, err := ah.accountService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}

type updateAccountRequest struct {
	Handle  *string         `json:"handle"`
	Email   *string         `json:"email"`
	Profile *profileRequest `json:"profile"`
}

func (ah *AccountHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}
	profile, ok := req.Profile.toInput(c)
	if !ok {
		return
	}

	account, err := ah.accountService.Update(c.Request.Context(), id, types.AccountPatch{
		Handle: req.Handle,
		Email:  req.Email,
	}, profile)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"account": account})
}

func (ah *AccountHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ah.accountService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (ah *AccountHandler) ListPosts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	posts, err := ah.accountService.ListPosts(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"posts": posts})
}
