package service

import (
	"context"
	"sync"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. Reads hand out copies so
// a mutation only becomes visible after an explicit Update, mirroring a real
// database round trip.

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeAssetRepo struct {
	mu     sync.Mutex
	assets map[uuid.UUID]model.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[uuid.UUID]model.Asset)}
}

func (r *fakeAssetRepo) Create(_ context.Context, asset *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[asset.ID] = *asset
	return nil
}

func (r *fakeAssetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeAssetRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeAssetRepo) FindByCode(_ context.Context, orgID uuid.UUID, code string) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.OrganizationID == orgID && a.Code == code {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssetRepo) List(_ context.Context, orgID uuid.UUID, status string, _, _ int) ([]model.Asset, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.Asset
	for _, a := range r.assets {
		if a.OrganizationID == orgID && (status == "" || a.Status == status) {
			res = append(res, a)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeAssetRepo) Update(_ context.Context, asset *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[asset.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	asset.Version++
	r.assets[asset.ID] = *asset
	return nil
}

type fakeTransferRepo struct {
	mu        sync.Mutex
	transfers map[uuid.UUID]model.AssetTransfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: make(map[uuid.UUID]model.AssetTransfer)}
}

func (r *fakeTransferRepo) Create(_ context.Context, t *model.AssetTransfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers[t.ID] = *t
	return nil
}

func (r *fakeTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AssetTransfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *fakeTransferRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.AssetTransfer, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeTransferRepo) List(_ context.Context, orgID uuid.UUID, status string, _, _ int) ([]model.AssetTransfer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.AssetTransfer
	for _, t := range r.transfers {
		if t.OrganizationID == orgID && (status == "" || t.Status == status) {
			res = append(res, t)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeTransferRepo) Update(_ context.Context, t *model.AssetTransfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transfers[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.transfers[t.ID] = *t
	return nil
}

type fakeDisposalRepo struct {
	mu        sync.Mutex
	disposals map[uuid.UUID]model.AssetDisposal
}

func newFakeDisposalRepo() *fakeDisposalRepo {
	return &fakeDisposalRepo{disposals: make(map[uuid.UUID]model.AssetDisposal)}
}

func (r *fakeDisposalRepo) Create(_ context.Context, d *model.AssetDisposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disposals[d.ID] = *d
	return nil
}

func (r *fakeDisposalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AssetDisposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.disposals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *fakeDisposalRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.AssetDisposal, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeDisposalRepo) List(_ context.Context, orgID uuid.UUID, status string, _, _ int) ([]model.AssetDisposal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.AssetDisposal
	for _, d := range r.disposals {
		if d.OrganizationID == orgID && (status == "" || d.Status == status) {
			res = append(res, d)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeDisposalRepo) Update(_ context.Context, d *model.AssetDisposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.disposals[d.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.disposals[d.ID] = *d
	return nil
}

type fakeMaintenanceRepo struct {
	mu        sync.Mutex
	schedules map[uuid.UUID]model.MaintenanceSchedule
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{schedules: make(map[uuid.UUID]model.MaintenanceSchedule)}
}

func (r *fakeMaintenanceRepo) Create(_ context.Context, m *model.MaintenanceSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[m.ID] = *m
	return nil
}

func (r *fakeMaintenanceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *fakeMaintenanceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeMaintenanceRepo) List(_ context.Context, orgID uuid.UUID, status string, _, _ int) ([]model.MaintenanceSchedule, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.MaintenanceSchedule
	for _, m := range r.schedules {
		if m.OrganizationID == orgID && (status == "" || m.Status == status) {
			res = append(res, m)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeMaintenanceRepo) Update(_ context.Context, m *model.MaintenanceSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.schedules[m.ID] = *m
	return nil
}

type fakeCheckRepo struct {
	mu      sync.Mutex
	checks  map[uuid.UUID]model.InventoryCheck
	details map[uuid.UUID]model.InventoryDetail
}

func newFakeCheckRepo() *fakeCheckRepo {
	return &fakeCheckRepo{
		checks:  make(map[uuid.UUID]model.InventoryCheck),
		details: make(map[uuid.UUID]model.InventoryDetail),
	}
}

func (r *fakeCheckRepo) Create(_ context.Context, c *model.InventoryCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[c.ID] = *c
	return nil
}

func (r *fakeCheckRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.checks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCheckRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryCheck, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeCheckRepo) List(_ context.Context, orgID uuid.UUID, status string, _, _ int) ([]model.InventoryCheck, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.InventoryCheck
	for _, c := range r.checks {
		if c.OrganizationID == orgID && (status == "" || c.Status == status) {
			res = append(res, c)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeCheckRepo) Update(_ context.Context, c *model.InventoryCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.checks[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.checks[c.ID] = *c
	return nil
}

func (r *fakeCheckRepo) CreateDetails(_ context.Context, details []model.InventoryDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range details {
		r.details[d.ID] = d
	}
	return nil
}

func (r *fakeCheckRepo) FindDetailsByCheckID(_ context.Context, checkID uuid.UUID) ([]model.InventoryDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.InventoryDetail
	for _, d := range r.details {
		if d.CheckID == checkID {
			res = append(res, d)
		}
	}
	return res, nil
}

func (r *fakeCheckRepo) FindDetail(_ context.Context, checkID, assetID uuid.UUID) (*model.InventoryDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.details {
		if d.CheckID == checkID && d.AssetID == assetID {
			found := d
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCheckRepo) UpdateDetail(_ context.Context, detail *model.InventoryDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.details[detail.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.details[detail.ID] = *detail
	return nil
}

type fakeBudgetRepo struct {
	mu    sync.Mutex
	plans map[uuid.UUID]model.BudgetPlan
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{plans: make(map[uuid.UUID]model.BudgetPlan)}
}

func (r *fakeBudgetRepo) Create(_ context.Context, p *model.BudgetPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID] = *p
	return nil
}

func (r *fakeBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BudgetPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeBudgetRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BudgetPlan, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBudgetRepo) FindActivePlan(_ context.Context, orgID, departmentID uuid.UUID, fiscalYear int, budgetType string) (*model.BudgetPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.OrganizationID == orgID && p.DepartmentID == departmentID &&
			p.FiscalYear == fiscalYear && p.BudgetType == budgetType &&
			p.Status == model.BudgetActive {
			found := p
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBudgetRepo) List(_ context.Context, orgID uuid.UUID, fiscalYear int, _, _ int) ([]model.BudgetPlan, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.BudgetPlan
	for _, p := range r.plans {
		if p.OrganizationID == orgID && (fiscalYear == 0 || p.FiscalYear == fiscalYear) {
			res = append(res, p)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, p *model.BudgetPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.plans[p.ID] = *p
	return nil
}

type fakeAccountingRepo struct {
	mu      sync.Mutex
	entries []model.AccountingEntry
}

func newFakeAccountingRepo() *fakeAccountingRepo {
	return &fakeAccountingRepo{}
}

func (r *fakeAccountingRepo) Create(_ context.Context, e *model.AccountingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAccountingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AccountingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAccountingRepo) FindByReference(_ context.Context, refType string, refID uuid.UUID) ([]model.AccountingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.AccountingEntry
	for _, e := range r.entries {
		if e.ReferenceType != nil && *e.ReferenceType == refType && e.ReferenceID != nil && *e.ReferenceID == refID {
			res = append(res, e)
		}
	}
	return res, nil
}

func (r *fakeAccountingRepo) List(_ context.Context, orgID uuid.UUID, entryType string, _, _ int) ([]model.AccountingEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.AccountingEntry
	for _, e := range r.entries {
		if e.OrganizationID == orgID && (entryType == "" || e.EntryType == entryType) {
			res = append(res, e)
		}
	}
	return res, int64(len(res)), nil
}
