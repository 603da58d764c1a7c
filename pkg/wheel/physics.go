package wheel

// Unwrap advances a continuously-accumulating visual angle toward a target
// in [0,360) without ever stepping more than 180 degrees. The visual angle
// is deliberately not reduced mod 360: each update adds the shortest
// signed delta between the target and the visual angle's principal value,
// so an animation tween between successive values never whips the long way
// around the 0/360 seam.
func Unwrap(visual, target float64) float64 {
	return visual + ShortestDelta(NormalizeDegrees(visual), NormalizeDegrees(target))
}
