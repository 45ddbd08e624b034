package material

import "fmt"

// Material holds the physical constants of the member material. JSON inputs
// use engineering units; SI helpers convert them for the solvers.
type Material struct {
	E_GPa       float64 `json:"e_gpa"`
	FyMPa       float64 `json:"fy_mpa"`
	DensityKgM3 float64 `json:"density_kg_m3"`
	GravityMS2  float64 `json:"gravity_m_s2"`
}

// Steel returns structural steel: E = 210 GPa, fy = 345 MPa, 7850 kg/m³.
func Steel() Material {
	return Material{
		E_GPa:       210,
		FyMPa:       345,
		DensityKgM3: 7850,
		GravityMS2:  9.81,
	}
}

// Or fills every non-positive field of m from d.
func (m Material) Or(d Material) Material {
	if m.E_GPa <= 0 {
		m.E_GPa = d.E_GPa
	}
	if m.FyMPa <= 0 {
		m.FyMPa = d.FyMPa
	}
	if m.DensityKgM3 <= 0 {
		m.DensityKgM3 = d.DensityKgM3
	}
	if m.GravityMS2 <= 0 {
		m.GravityMS2 = d.GravityMS2
	}
	return m
}

func (m Material) Validate() error {
	if m.E_GPa <= 0 || m.FyMPa <= 0 || m.DensityKgM3 <= 0 || m.GravityMS2 <= 0 {
		return fmt.Errorf("invalid material: E=%g GPa, fy=%g MPa, density=%g kg/m3, g=%g m/s2",
			m.E_GPa, m.FyMPa, m.DensityKgM3, m.GravityMS2)
	}
	return nil
}

// EPa is the elastic modulus in pascals.
func (m Material) EPa() float64 { return m.E_GPa * 1e9 }

// FyPa is the yield stress in pascals.
func (m Material) FyPa() float64 { return m.FyMPa * 1e6 }

// UnitWeight is the weight per unit volume in N/m³.
func (m Material) UnitWeight() float64 { return m.DensityKgM3 * m.GravityMS2 }
