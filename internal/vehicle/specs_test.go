package vehicle_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/launchsim/internal/vehicle"
)

var frcPacejka = vehicle.Pacejka{Stiffness: 16.6675, Shape: 0.05343, Peak: 65.1759, Curvature: 1.0301}

var _ = Describe("spec construction", func() {
	Describe("Vehicle", func() {
		It("derives the wheelbase from the axle distances", func() {
			v, err := vehicle.NewVehicle(0.126, 0.126, 5, 0.032, 0.75, 0.0418)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Wheelbase).To(BeNumerically("~", 0.252, 1e-12))
		})

		It("rejects non-positive mass", func() {
			_, err := vehicle.NewVehicle(0.126, 0.126, 0, 0.032, 0.75, 0.0418)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
			_, err = vehicle.NewVehicle(0.126, 0.126, -5, 0.032, 0.75, 0.0418)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
		})

		It("rejects a zero wheelbase", func() {
			_, err := vehicle.NewVehicle(0, 0.126, 5, 0.032, 0.75, 0.0418)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
		})
	})

	Describe("Motor", func() {
		It("derives Kt from Kv", func() {
			m, err := vehicle.NewMotor(2000, 0.8)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Kt).To(BeNumerically("~", 1/(2000*0.10472), 1e-15))
		})

		It("maps torque to current and back", func() {
			m, err := vehicle.NewMotor(2000, 0.8)
			Expect(err).NotTo(HaveOccurred())
			amps := m.Current(0.5)
			Expect(m.Torque(amps)).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("rejects non-positive Kv", func() {
			_, err := vehicle.NewMotor(0, 0.8)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
		})

		It("rejects efficiency outside (0,1]", func() {
			_, err := vehicle.NewMotor(2000, 0)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
			_, err = vehicle.NewMotor(2000, 1.2)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
			_, err = vehicle.NewMotor(2000, 1)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Battery", func() {
		It("derives the continuous and burst currents", func() {
			b, err := vehicle.NewBattery(10, 5, 3.6, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Continuous).To(BeNumerically("~", 50, 1e-12))
			Expect(b.Burst).To(BeNumerically("~", 97.5, 1e-12))
		})

		It("keeps the burst ceiling under the 2x fuse rating", func() {
			b, err := vehicle.NewBattery(10, 5, 3.6, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Burst).To(BeNumerically("<", 2*b.Continuous))
		})

		It("rejects non-positive capacity", func() {
			_, err := vehicle.NewBattery(0, 5, 3.6, 8)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
		})
	})

	Describe("Tire", func() {
		It("rejects non-positive radius", func() {
			_, err := vehicle.NewTire(0, 0.00001667, frcPacejka)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
		})

		It("rejects non-positive inertia", func() {
			_, err := vehicle.NewTire(0.032, -1, frcPacejka)
			Expect(err).To(MatchError(vehicle.ErrInvalidSpec))
		})
	})
})
