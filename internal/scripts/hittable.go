package scripts

// Hittable is anything the gun can deliver a hit to.
type Hittable interface {
	OnHit()
}

// AimProvider is the weapon's aim state as seen by movement. Movement reads
// it to scale speed and sensitivity and may force aim off on jump.
type AimProvider interface {
	IsAiming() bool
	SetAiming(aiming bool)
}
