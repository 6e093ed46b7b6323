package models

// Owner is the claim-owner token of a square: nobody, a registered user,
// or a placeholder display name for someone not yet signed up. The two
// backing columns are never both set; this type makes that unrepresentable
// outside the database layer.
type Owner struct {
	userID *uint
	name   *string
}

func NoOwner() Owner {
	return Owner{}
}

func RegisteredOwner(userID uint) Owner {
	return Owner{userID: &userID}
}

func PlaceholderOwner(name string) Owner {
	return Owner{name: &name}
}

// OwnerFromColumns builds an Owner from the nullable database columns.
// A row with both set is treated as registered; the user reference wins.
func OwnerFromColumns(userID *uint, name *string) Owner {
	if userID != nil {
		id := *userID
		return Owner{userID: &id}
	}
	if name != nil && *name != "" {
		n := *name
		return Owner{name: &n}
	}
	return Owner{}
}

func (o Owner) IsSet() bool {
	return o.userID != nil || o.name != nil
}

func (o Owner) UserID() (uint, bool) {
	if o.userID == nil {
		return 0, false
	}
	return *o.userID, true
}

func (o Owner) Name() (string, bool) {
	if o.name == nil {
		return "", false
	}
	return *o.name, true
}

func (o Owner) Equal(other Owner) bool {
	if o.userID != nil && other.userID != nil {
		return *o.userID == *other.userID
	}
	if o.name != nil && other.name != nil {
		return *o.name == *other.name
	}
	return !o.IsSet() && !other.IsSet()
}

// Columns returns the values to persist for this owner.
func (o Owner) Columns() (userID *uint, name *string) {
	return o.userID, o.name
}
