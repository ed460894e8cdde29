package entity

import "errors"

// ErrDashboardNotFound is terminal for a whole render: no partial dashboard
// is shown when the dashboard itself does not exist.
var ErrDashboardNotFound = errors.New("dashboard not found")

// ErrCardNotFound is returned by the card store for unknown card ids.
var ErrCardNotFound = errors.New("card not found")

// ErrNotOwner is returned when a mutation is attempted by a viewer who does
// not own the target dashboard.
var ErrNotOwner = errors.New("viewer does not own this dashboard")

// ErrSlugTaken is returned when creating a dashboard with a slug the owner
// already uses.
var ErrSlugTaken = errors.New("dashboard slug already in use")
