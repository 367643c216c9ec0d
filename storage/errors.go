package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this ID already exists")
var ErrNothingToUpdate = errors.New("no fields to update")
