package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"catering_manager/internal/models"
	"catering_manager/internal/services"
	"catering_manager/pkg/invoice"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	catalogService services.CatalogService
	menuService    services.MenuService
	orderService   services.OrderService
	reportService  services.ReportService
	exportService  services.ExportService
	sessionService services.SessionService
	backupService  services.BackupService
	busy           *services.Busy
	loginDelay     time.Duration
}

type Services struct {
	Catalog services.CatalogService
	Menus   services.MenuService
	Orders  services.OrderService
	Reports services.ReportService
	Exports services.ExportService
	Session services.SessionService
	Backup  services.BackupService
}

func NewAPIHandler(svc Services, busy *services.Busy, loginDelay time.Duration) *APIHandler {
	return &APIHandler{
		catalogService: svc.Catalog,
		menuService:    svc.Menus,
		orderService:   svc.Orders,
		reportService:  svc.Reports,
		exportService:  svc.Exports,
		sessionService: svc.Session,
		backupService:  svc.Backup,
		busy:           busy,
		loginDelay:     loginDelay,
	}
}

// respondError maps service errors onto status codes. Only validation and
// not-found messages reach the client verbatim.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrUnexpected.Error()})
	}
}

func confirmed(c *gin.Context) bool {
	if ok, _ := strconv.ParseBool(c.Query("confirm")); ok {
		return true
	}
	c.JSON(http.StatusConflict, gin.H{"error": "Are you sure? Repeat the request with confirm=true"})
	return false
}

// Session endpoints
func (h *APIHandler) GetSession(c *gin.Context) {
	active, err := h.sessionService.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "busy": h.busy.Active()})
}

func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.busy.RunWithDelay(c.Request.Context(), "login", h.loginDelay, func(ctx context.Context) error {
		return h.sessionService.Login(ctx, req.Username, req.Password)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true})
}

func (h *APIHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": false})
}

// Catalog endpoints
func (h *APIHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":         h.catalogService.ListItems(),
		"editingItemId": h.catalogService.EditingItemID(),
	})
}

type itemRequest struct {
	Name string `json:"name"`
}

func (h *APIHandler) AddItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var item *models.Item
	err := h.busy.Run(c.Request.Context(), "add_item", func(ctx context.Context) (err error) {
		item, err = h.catalogService.AddItem(ctx, req.Name)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *APIHandler) EditItem(c *gin.Context) {
	item, ok := h.catalogService.EditItem(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"editing": ok, "item": item})
}

func (h *APIHandler) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var item *models.Item
	err := h.busy.Run(c.Request.Context(), "update_item", func(ctx context.Context) (err error) {
		item, err = h.catalogService.UpdateItem(ctx, c.Param("id"), req.Name)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": item != nil, "item": item})
}

func (h *APIHandler) CancelItemEdit(c *gin.Context) {
	h.catalogService.CancelItemEdit()
	c.JSON(http.StatusOK, gin.H{"editingItemId": ""})
}

func (h *APIHandler) DeleteItem(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	err := h.busy.Run(c.Request.Context(), "delete_item", func(ctx context.Context) error {
		return h.catalogService.DeleteItem(ctx, c.Param("id"))
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// Menu endpoints
func (h *APIHandler) ListMenus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"menus":         h.menuService.ListMenus(),
		"editingMenuId": h.menuService.EditingMenuID(),
	})
}

func (h *APIHandler) SaveMenu(c *gin.Context) {
	var req struct {
		Name  string      `json:"name"`
		Price interface{} `json:"price"`
		Items []string    `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var menu *models.Menu
	err := h.busy.Run(c.Request.Context(), "save_menu", func(ctx context.Context) (err error) {
		menu, err = h.menuService.SaveMenu(ctx, services.MenuInput{
			Name:  req.Name,
			Price: priceText(req.Price),
			Items: req.Items,
		})
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menu": menu})
}

// priceText accepts the price as a JSON number or as form text.
func priceText(v interface{}) string {
	switch p := v.(type) {
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	case string:
		return p
	default:
		return ""
	}
}

func (h *APIHandler) MenuSelector(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"options":       h.menuService.Selector(),
		"editingMenuId": h.menuService.EditingMenuID(),
	})
}

func (h *APIHandler) EditMenu(c *gin.Context) {
	opts, ok := h.menuService.EditMenu(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"editing": ok, "options": opts})
}

func (h *APIHandler) CancelMenuEdit(c *gin.Context) {
	h.menuService.CancelMenuEdit()
	c.JSON(http.StatusOK, gin.H{"options": h.menuService.Selector(), "editingMenuId": ""})
}

func (h *APIHandler) DeleteMenu(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	err := h.busy.Run(c.Request.Context(), "delete_menu", func(ctx context.Context) error {
		return h.menuService.DeleteMenu(ctx, c.Param("id"))
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// Order endpoints
func (h *APIHandler) draftView(c *gin.Context, status int) {
	c.JSON(status, gin.H{
		"form":           h.orderService.Form(),
		"draft":          h.orderService.Draft(),
		"exportsEnabled": h.orderService.ExportsEnabled(),
	})
}

func (h *APIHandler) GetDraft(c *gin.Context) {
	h.draftView(c, http.StatusOK)
}

func (h *APIHandler) UpdateDraft(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.orderService.UpdateDraft(form)
	h.draftView(c, http.StatusOK)
}

func (h *APIHandler) ConfirmOrder(c *gin.Context) {
	var order *models.Order
	err := h.busy.Run(c.Request.Context(), "confirm_order", func(ctx context.Context) (err error) {
		order, err = h.orderService.ConfirmOrder(ctx)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "exportsEnabled": h.orderService.ExportsEnabled()})
}

func (h *APIHandler) ClearDraft(c *gin.Context) {
	h.orderService.ClearForm()
	h.draftView(c, http.StatusOK)
}

func (h *APIHandler) ViewOrder(c *gin.Context) {
	if _, err := h.orderService.LoadOrderForViewing(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.draftView(c, http.StatusOK)
}

func (h *APIHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.orderService.ListOrders()})
}

// Report endpoints
func (h *APIHandler) RevenueReport(c *gin.Context) {
	month, ok := c.GetQuery("month")
	if !ok {
		month = h.reportService.DefaultMonth()
	}
	report, err := h.reportService.RenderReport(month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export endpoints
func (h *APIHandler) ListFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats": h.exportService.Formats(),
		"enabled": h.orderService.ExportsEnabled(),
	})
}

func (h *APIHandler) ExportDraft(c *gin.Context) {
	art, err := h.exportService.Export(c.Param("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendArtifact(c, art)
}

func (h *APIHandler) ExportOrder(c *gin.Context) {
	art, err := h.exportService.ExportOrder(c.Param("id"), c.Param("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendArtifact(c, art)
}

func sendArtifact(c *gin.Context, art *invoice.Artifact) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", "invoice")
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

// Backup endpoints
func (h *APIHandler) GetBackup(c *gin.Context) {
	c.JSON(http.StatusOK, h.backupService.Snapshot())
}

func (h *APIHandler) RestoreBackup(c *gin.Context) {
	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.busy.Run(c.Request.Context(), "restore_backup", func(ctx context.Context) error {
		return h.backupService.Restore(ctx, snap)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	snap = h.backupService.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"items":  len(snap.Items),
		"menus":  len(snap.Menus),
		"orders": len(snap.Orders),
	})
}
