package seeds

import (
	"testing"

	"laporbug_backend/internals/databases/dbtest"
	refModel "laporbug_backend/internals/features/references/model"
	authModel "laporbug_backend/internals/features/users/auth/model"
)

func TestRunAllSeedsIsRepeatable(t *testing.T) {
	db := dbtest.Open(t)

	RunAllSeeds(db, "data_seed.json")
	RunAllSeeds(db, "data_seed.json")

	counts := []struct {
		model any
		want  int64
	}{
		{&refModel.ValidatorModel{}, 2},
		{&refModel.TeknisiModel{}, 2},
		{&refModel.BugCategoryModel{}, 3},
		{&authModel.UserModel{}, 6},
	}
	for _, c := range counts {
		var n int64
		if err := db.Model(c.model).Count(&n).Error; err != nil {
			t.Fatalf("count %T: %v", c.model, err)
		}
		if n != c.want {
			t.Fatalf("%T rows = %d, want %d", c.model, n, c.want)
		}
	}

	var u authModel.UserModel
	if err := db.Where("username = ?", "superadmin").First(&u).Error; err != nil {
		t.Fatalf("superadmin missing: %v", err)
	}
	if u.NaturalKey != "superadmin" || u.Password == "rahasia123" {
		t.Fatalf("superadmin = %+v", u)
	}
}
