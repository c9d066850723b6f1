package service

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/models/response"
	"pdam-be-svc/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) CountByEmail(email string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Email == email {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) GetPelangganUsers(offset, limit int) ([]*models.User, error) {
	var users []*models.User
	for _, user := range r.users {
		if user.Role == models.RolePelanggan {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *fakeUserRepo) CountPelanggan() (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == models.RolePelanggan {
			count++
		}
	}
	return count, nil
}

// fakeTagihanRepo is an in-memory TagihanRepository for service tests
type fakeTagihanRepo struct {
	tagihans map[uint]*models.Tagihan
	nextID   uint
}

func newFakeTagihanRepo() *fakeTagihanRepo {
	return &fakeTagihanRepo{tagihans: make(map[uint]*models.Tagihan), nextID: 1}
}

func (r *fakeTagihanRepo) CreateInPeriod(tagihan *models.Tagihan) error {
	for _, existing := range r.tagihans {
		if existing.UserID == tagihan.UserID && existing.Bulan == tagihan.Bulan && existing.Tahun == tagihan.Tahun {
			return repository.ErrDuplicatePeriod
		}
	}
	tagihan.ID = r.nextID
	r.nextID++
	r.tagihans[tagihan.ID] = tagihan
	return nil
}

func (r *fakeTagihanRepo) GetByID(id uint) (*models.Tagihan, error) {
	if tagihan, ok := r.tagihans[id]; ok {
		return tagihan, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagihanRepo) GetByUserID(userID uint) ([]*models.Tagihan, error) {
	var tagihans []*models.Tagihan
	for _, tagihan := range r.tagihans {
		if tagihan.UserID == userID {
			tagihans = append(tagihans, tagihan)
		}
	}
	sort.Slice(tagihans, func(i, j int) bool { return tagihans[i].ID > tagihans[j].ID })
	return tagihans, nil
}

func (r *fakeTagihanRepo) GetVerificationQueue() ([]*response.VerifikasiListItem, error) {
	var items []*response.VerifikasiListItem
	for _, tagihan := range r.tagihans {
		if tagihan.StatusBayar == models.StatusMenungguVerifikasi {
			items = append(items, &response.VerifikasiListItem{
				ID:         tagihan.ID,
				Bulan:      tagihan.Bulan,
				Tahun:      tagihan.Tahun,
				TotalBayar: tagihan.TotalBayar,
				BuktiBayar: tagihan.BuktiBayar,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeTagihanRepo) GetAllWithUser() ([]*models.Tagihan, error) {
	var tagihans []*models.Tagihan
	for _, tagihan := range r.tagihans {
		tagihans = append(tagihans, tagihan)
	}
	sort.Slice(tagihans, func(i, j int) bool { return tagihans[i].ID > tagihans[j].ID })
	return tagihans, nil
}

func (r *fakeTagihanRepo) GetForExport(bulan *string, tahun *int, status *string) ([]*models.Tagihan, error) {
	all, _ := r.GetAllWithUser()
	var tagihans []*models.Tagihan
	for _, tagihan := range all {
		if bulan != nil && tagihan.Bulan != *bulan {
			continue
		}
		if tahun != nil && tagihan.Tahun != *tahun {
			continue
		}
		if status != nil && tagihan.StatusBayar != *status {
			continue
		}
		tagihans = append(tagihans, tagihan)
	}
	return tagihans, nil
}

func (r *fakeTagihanRepo) CountByStatus(status string) (int64, error) {
	var count int64
	for _, tagihan := range r.tagihans {
		if tagihan.StatusBayar == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeTagihanRepo) SumTotalByStatus(status string) (int64, error) {
	var sum int64
	for _, tagihan := range r.tagihans {
		if tagihan.StatusBayar == status {
			sum += tagihan.TotalBayar
		}
	}
	return sum, nil
}

func (r *fakeTagihanRepo) Update(tagihan *models.Tagihan) error {
	if _, ok := r.tagihans[tagihan.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tagihans[tagihan.ID] = tagihan
	return nil
}

// fakePengaduanRepo is an in-memory PengaduanRepository for service tests
type fakePengaduanRepo struct {
	pengaduans map[uint]*models.Pengaduan
	nextID     uint
}

func newFakePengaduanRepo() *fakePengaduanRepo {
	return &fakePengaduanRepo{pengaduans: make(map[uint]*models.Pengaduan), nextID: 1}
}

func (r *fakePengaduanRepo) Create(pengaduan *models.Pengaduan) error {
	pengaduan.ID = r.nextID
	pengaduan.CreatedAt = time.Now()
	r.nextID++
	r.pengaduans[pengaduan.ID] = pengaduan
	return nil
}

func (r *fakePengaduanRepo) GetByID(id uint) (*models.Pengaduan, error) {
	if pengaduan, ok := r.pengaduans[id]; ok {
		return pengaduan, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePengaduanRepo) GetByUserID(userID uint) ([]*models.Pengaduan, error) {
	var pengaduans []*models.Pengaduan
	for _, pengaduan := range r.pengaduans {
		if pengaduan.UserID != nil && *pengaduan.UserID == userID && !pengaduan.IsDeletedByUser {
			pengaduans = append(pengaduans, pengaduan)
		}
	}
	sort.Slice(pengaduans, func(i, j int) bool { return pengaduans[i].ID > pengaduans[j].ID })
	return pengaduans, nil
}

func (r *fakePengaduanRepo) GetAllWithUser() ([]*models.Pengaduan, error) {
	var pengaduans []*models.Pengaduan
	for _, pengaduan := range r.pengaduans {
		pengaduans = append(pengaduans, pengaduan)
	}
	sort.Slice(pengaduans, func(i, j int) bool { return pengaduans[i].ID > pengaduans[j].ID })
	return pengaduans, nil
}

func (r *fakePengaduanRepo) CountUnread() (int64, error) {
	var count int64
	for _, pengaduan := range r.pengaduans {
		if !pengaduan.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakePengaduanRepo) MarkAllRead() (int64, error) {
	var marked int64
	for _, pengaduan := range r.pengaduans {
		if !pengaduan.IsRead {
			pengaduan.IsRead = true
			marked++
		}
	}
	return marked, nil
}

func (r *fakePengaduanRepo) Update(pengaduan *models.Pengaduan) error {
	if _, ok := r.pengaduans[pengaduan.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.pengaduans[pengaduan.ID] = pengaduan
	return nil
}

func (r *fakePengaduanRepo) Delete(id uint) error {
	delete(r.pengaduans, id)
	return nil
}
