package service

import (
	"context"
	"strconv"
	"time"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/filter"
)

// In-memory repository stubs. Records are stored in insertion order; List
// applies the predicate the way a real backend query would.

type stubUserRepo struct {
	seq   int64
	users []*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.seq++
	user.ID = r.seq
	r.users = append(r.users, cloneUser(user))
	return cloneUser(user), nil
}

func (r *stubUserRepo) ByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) ByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context, pred *filter.Predicate) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if pred != nil && !matchUser(u, pred) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = cloneUser(user)
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrNotFound
}

func matchUser(u *domain.User, pred *filter.Predicate) bool {
	fields := map[string]string{
		"id":     strconv.FormatInt(u.ID, 10),
		"login":  u.Login,
		"roleId": strconv.FormatInt(int64(u.RoleID), 10),
		"state":  strconv.Itoa(int(u.State)),
	}
	value, ok := fields[pred.Field]
	if !ok {
		return false
	}
	return pred.Match(value)
}

type stubObjectRepo struct {
	seq     int64
	objects []*domain.Object
}

func newStubObjectRepo() *stubObjectRepo {
	return &stubObjectRepo{}
}

func cloneObject(o *domain.Object) *domain.Object {
	clone := *o
	return &clone
}

func (r *stubObjectRepo) Create(_ context.Context, obj *domain.Object) (*domain.Object, error) {
	r.seq++
	obj.ID = r.seq
	r.objects = append(r.objects, cloneObject(obj))
	return cloneObject(obj), nil
}

func (r *stubObjectRepo) ByID(_ context.Context, id int64) (*domain.Object, error) {
	for _, o := range r.objects {
		if o.ID == id && o.State != domain.ObjectRemoved {
			return cloneObject(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubObjectRepo) List(_ context.Context, pred *filter.Predicate) ([]*domain.Object, error) {
	var out []*domain.Object
	for _, o := range r.objects {
		if o.State == domain.ObjectRemoved {
			continue
		}
		if pred != nil && !matchObject(o, pred) {
			continue
		}
		out = append(out, cloneObject(o))
	}
	return out, nil
}

func (r *stubObjectRepo) Update(_ context.Context, obj *domain.Object) (*domain.Object, error) {
	for i, o := range r.objects {
		if o.ID == obj.ID {
			r.objects[i] = cloneObject(obj)
			return cloneObject(obj), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubObjectRepo) Exist(_ context.Context, ids []int64) (bool, error) {
	for _, id := range ids {
		found := false
		for _, o := range r.objects {
			if o.ID == id && o.State != domain.ObjectRemoved {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

func matchObject(o *domain.Object, pred *filter.Predicate) bool {
	fields := map[string]string{
		"id":       strconv.FormatInt(o.ID, 10),
		"name":     o.Name,
		"regionId": strconv.FormatInt(o.RegionID, 10),
		"district": o.District,
		"state":    strconv.Itoa(int(o.State)),
	}
	value, ok := fields[pred.Field]
	if !ok {
		return false
	}
	return pred.Match(value)
}

type stubEquipmentRepo struct {
	seq   int64
	units []*domain.Equipment
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{}
}

func cloneEquipment(e *domain.Equipment) *domain.Equipment {
	clone := *e
	return &clone
}

func (r *stubEquipmentRepo) Create(_ context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	r.seq++
	eq.ID = r.seq
	r.units = append(r.units, cloneEquipment(eq))
	return cloneEquipment(eq), nil
}

func (r *stubEquipmentRepo) ByID(_ context.Context, id int64) (*domain.Equipment, error) {
	for _, e := range r.units {
		if e.ID == id && e.State != domain.EquipmentRemoved {
			return cloneEquipment(e), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubEquipmentRepo) List(_ context.Context, pred *filter.Predicate) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for _, e := range r.units {
		if e.State == domain.EquipmentRemoved {
			continue
		}
		if pred != nil {
			fields := map[string]string{
				"id":       strconv.FormatInt(e.ID, 10),
				"objectId": strconv.FormatInt(e.ObjectID, 10),
				"state":    strconv.Itoa(int(e.State)),
			}
			value, ok := fields[pred.Field]
			if !ok || !pred.Match(value) {
				continue
			}
		}
		out = append(out, cloneEquipment(e))
	}
	return out, nil
}

func (r *stubEquipmentRepo) Update(_ context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	for i, e := range r.units {
		if e.ID == eq.ID {
			r.units[i] = cloneEquipment(eq)
			return cloneEquipment(eq), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubEquipmentRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, e := range r.units {
		if e.ID == id && e.State != domain.EquipmentRemoved {
			return true, nil
		}
	}
	return false, nil
}

type stubOrganizationRepo struct {
	seq  int64
	orgs []*domain.Organization
}

func newStubOrganizationRepo() *stubOrganizationRepo {
	return &stubOrganizationRepo{}
}

func cloneOrganization(o *domain.Organization) *domain.Organization {
	clone := *o
	return &clone
}

func (r *stubOrganizationRepo) Create(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	r.seq++
	org.ID = r.seq
	r.orgs = append(r.orgs, cloneOrganization(org))
	return cloneOrganization(org), nil
}

func (r *stubOrganizationRepo) ByID(_ context.Context, id int64) (*domain.Organization, error) {
	for _, o := range r.orgs {
		if o.ID == id {
			return cloneOrganization(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubOrganizationRepo) List(_ context.Context, pred *filter.Predicate) ([]*domain.Organization, error) {
	var out []*domain.Organization
	for _, o := range r.orgs {
		if pred != nil {
			fields := map[string]string{
				"id":    strconv.FormatInt(o.ID, 10),
				"name":  o.Name,
				"inn":   o.INN,
				"state": strconv.Itoa(int(o.State)),
			}
			value, ok := fields[pred.Field]
			if !ok || !pred.Match(value) {
				continue
			}
		}
		out = append(out, cloneOrganization(o))
	}
	return out, nil
}

func (r *stubOrganizationRepo) Update(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	for i, o := range r.orgs {
		if o.ID == org.ID {
			r.orgs[i] = cloneOrganization(org)
			return cloneOrganization(org), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubOrganizationRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, o := range r.orgs {
		if o.ID == id && o.State != domain.OrganizationDisabled {
			return true, nil
		}
	}
	return false, nil
}

type stubDefectRepo struct {
	seq     int64
	defects []*domain.Defect
}

func newStubDefectRepo() *stubDefectRepo {
	return &stubDefectRepo{}
}

func cloneDefect(d *domain.Defect) *domain.Defect {
	clone := *d
	return &clone
}

func (r *stubDefectRepo) Create(_ context.Context, d *domain.Defect) (*domain.Defect, error) {
	r.seq++
	d.ID = r.seq
	r.defects = append(r.defects, cloneDefect(d))
	return cloneDefect(d), nil
}

func (r *stubDefectRepo) ByID(_ context.Context, id int64) (*domain.Defect, error) {
	for _, d := range r.defects {
		if d.ID == id {
			return cloneDefect(d), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubDefectRepo) List(_ context.Context, pred *filter.Predicate) ([]*domain.Defect, error) {
	var out []*domain.Defect
	for _, d := range r.defects {
		if pred != nil {
			fields := map[string]string{
				"id":             strconv.FormatInt(d.ID, 10),
				"equipmentId":    strconv.FormatInt(d.EquipmentID, 10),
				"organizationId": strconv.FormatInt(d.OrganizationID, 10),
				"state":          strconv.Itoa(int(d.State)),
			}
			value, ok := fields[pred.Field]
			if !ok || !pred.Match(value) {
				continue
			}
		}
		out = append(out, cloneDefect(d))
	}
	return out, nil
}

func (r *stubDefectRepo) Update(_ context.Context, d *domain.Defect) (*domain.Defect, error) {
	for i, existing := range r.defects {
		if existing.ID == d.ID {
			r.defects[i] = cloneDefect(d)
			return cloneDefect(d), nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubResourceRepo struct {
	seq       int64
	resources []domain.FileResource
}

func newStubResourceRepo() *stubResourceRepo {
	return &stubResourceRepo{}
}

func (r *stubResourceRepo) Create(_ context.Context, res *domain.FileResource) (*domain.FileResource, error) {
	r.seq++
	res.ID = r.seq
	r.resources = append(r.resources, *res)
	clone := *res
	return &clone, nil
}

func (r *stubResourceRepo) ByIDs(_ context.Context, ids []int64) ([]domain.FileResource, error) {
	out := []domain.FileResource{}
	for _, res := range r.resources {
		for _, id := range ids {
			if res.ID == id {
				out = append(out, res)
				break
			}
		}
	}
	return out, nil
}

func (r *stubResourceRepo) Exist(_ context.Context, ids []int64) (bool, error) {
	for _, id := range ids {
		found := false
		for _, res := range r.resources {
			if res.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

type stubRegionRepo struct {
	regions []domain.Region
}

func newStubRegionRepo(regions ...domain.Region) *stubRegionRepo {
	return &stubRegionRepo{regions: regions}
}

func (r *stubRegionRepo) ByID(_ context.Context, id int64) (*domain.Region, error) {
	for _, region := range r.regions {
		if region.ID == id {
			clone := region
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRegionRepo) ByIDs(_ context.Context, ids []int64) ([]domain.Region, error) {
	out := []domain.Region{}
	for _, region := range r.regions {
		for _, id := range ids {
			if region.ID == id {
				out = append(out, region)
				break
			}
		}
	}
	return out, nil
}

type stubSettingsRepo struct {
	settings domain.Settings
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{settings: domain.DefaultSettings()}
}

func (r *stubSettingsRepo) Get(_ context.Context) (domain.Settings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, s domain.Settings) error {
	r.settings = s
	return nil
}

// stubAttemptStore counts failures per login in a fixed window, mirroring the
// production stores without any expiry complexity the tests don't need.
type stubAttemptStore struct {
	counts map[string]int
	starts map[string]time.Time
}

func newStubAttemptStore() *stubAttemptStore {
	return &stubAttemptStore{
		counts: make(map[string]int),
		starts: make(map[string]time.Time),
	}
}

func (s *stubAttemptStore) Fail(_ context.Context, login string, now time.Time, window time.Duration) (int, error) {
	if start, ok := s.starts[login]; !ok || now.Sub(start) >= window {
		s.starts[login] = now
		s.counts[login] = 0
	}
	s.counts[login]++
	return s.counts[login], nil
}

func (s *stubAttemptStore) Count(_ context.Context, login string, now time.Time, window time.Duration) (int, error) {
	start, ok := s.starts[login]
	if !ok || now.Sub(start) >= window {
		return 0, nil
	}
	return s.counts[login], nil
}

func (s *stubAttemptStore) Reset(_ context.Context, login string) error {
	delete(s.counts, login)
	delete(s.starts, login)
	return nil
}
