package scene

import (
	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
)

// ClosureKind enumerates the shader-closure node kinds a material graph
// can be built from. SSS is a documented gap: no diffusion-based BSSRDF
// solver exists (§9 open question (a)), so BuildBSDF gives an SSS node a
// plain Lambertian lobe of its Reflectance (black when unset) and no
// BSSRDF is attached; any integrator expecting subsurface transport on
// that material must handle the missing BSSRDF itself (see ErrNoBSSRDF).
type ClosureKind int

const (
	Lambert ClosureKind = iota
	OrenNayarClosure
	DisneyClosure
	MicrofacetReflectionClosure
	MicrofacetRefractionClosure
	AshikhminShirleyClosure
	PhongClosure
	LambertTransmissionClosure
	MirrorClosure
	DielectricClosure
	MicrofacetReflectionDielectricClosure
	HairClosure
	FourierClosure
	MERLClosure
	CoatClosure
	DoubleSidedClosure
	DistributionBRDFClosure
	FabricClosure
	SSS
)

// ClosureNode is one node of a material's shader-closure tree: either a
// leaf BxDF (Kind plus its parameters) or a Coat/DoubleSided wrapper
// around a single child. BuildBSDF walks the tree multiplying weights
// down to each leaf's lobe, matching how a layered material composites
// its sub-closures.
type ClosureNode struct {
	Kind   ClosureKind
	Weight float64 // multiplies the resulting lobe's contribution; 0 defaults to 1
	Child  *ClosureNode

	// Leaf parameters. Only the fields relevant to Kind are read.
	Reflectance   core.Spectrum
	Transmittance core.Spectrum
	Roughness     float64
	RoughnessV    float64 // anisotropic second roughness axis; 0 defaults to Roughness
	Distribution  string  // "ggx" | "beckmann" | "blinn", default "ggx"
	EtaA, EtaB    float64 // dielectric IOR on either side of the interface
	Eta           core.Spectrum
	K             core.Spectrum // conductor extinction coefficient
	Exponent      float64       // Phong/Ashikhmin-Shirley specular exponent

	Metallic       float64
	Specular       float64
	SpecularTint   float64
	Sheen          float64
	SheenTint      float64
	Clearcoat      float64
	ClearcoatGloss float64

	SigmaA     core.Spectrum
	BetaM      float64
	BetaN      float64

	FourierTable string
	MERLTable    string
}

func weightOf(node *ClosureNode) float64 {
	if node.Weight == 0 {
		return 1
	}
	return node.Weight
}

func buildDistribution(node *ClosureNode) bxdf.Distribution {
	alphaX := node.Roughness
	alphaY := node.RoughnessV
	if alphaY == 0 {
		alphaY = alphaX
	}
	switch node.Distribution {
	case "beckmann":
		return bxdf.NewBeckmannDistribution(alphaX, alphaY)
	case "blinn":
		return bxdf.NewBlinnDistribution(node.Exponent)
	default:
		return bxdf.NewGGXDistribution(alphaX, alphaY)
	}
}

func buildLeaf(node *ClosureNode) bxdf.BxDF {
	switch node.Kind {
	case Lambert:
		return bxdf.NewLambertian(node.Reflectance)
	case OrenNayarClosure:
		return bxdf.NewOrenNayar(node.Reflectance, node.Roughness)
	case DisneyClosure:
		return bxdf.NewDisney(node.Reflectance, node.Metallic, node.Roughness, node.Specular,
			node.SpecularTint, node.Sheen, node.SheenTint, node.Clearcoat, node.ClearcoatGloss)
	case MicrofacetReflectionClosure:
		fr := bxdf.ConductorFresnel{EtaI: core.Splat(1), Eta: node.Eta, K: node.K}
		return bxdf.NewMicrofacetReflection(node.Reflectance, buildDistribution(node), fr)
	case MicrofacetReflectionDielectricClosure:
		fr := bxdf.DielectricFresnel{EtaI: node.EtaA, EtaT: node.EtaB}
		return bxdf.NewMicrofacetReflection(node.Reflectance, buildDistribution(node), fr)
	case MicrofacetRefractionClosure:
		return bxdf.NewMicrofacetTransmission(node.Transmittance, buildDistribution(node), node.EtaA, node.EtaB)
	case AshikhminShirleyClosure:
		return bxdf.NewAshikhminShirley(node.Reflectance, node.Transmittance, node.Exponent)
	case PhongClosure:
		return bxdf.NewPhong(node.Reflectance, node.Transmittance, node.Exponent)
	case LambertTransmissionClosure:
		return bxdf.NewLambertianTransmission(node.Transmittance)
	case MirrorClosure:
		return bxdf.NewMirror(node.Reflectance)
	case DielectricClosure:
		return bxdf.NewDielectric(node.Reflectance, node.Transmittance, node.EtaA, node.EtaB)
	case HairClosure:
		return bxdf.NewHair(node.SigmaA, node.BetaM, node.BetaN, node.EtaA)
	case FourierClosure:
		if fourier, ok := bxdf.NewFourierByName(node.FourierTable); ok {
			return fourier
		}
		return bxdf.NewLambertian(node.Reflectance)
	case MERLClosure:
		if merl, ok := bxdf.NewMERLByName(node.MERLTable); ok {
			return merl
		}
		return bxdf.NewLambertian(node.Reflectance)
	case FabricClosure:
		return bxdf.NewFabric(node.Reflectance, node.Roughness, node.SigmaA, node.Exponent)
	case SSS:
		return bxdf.NewLambertian(node.Reflectance)
	default:
		return bxdf.NewLambertian(node.Reflectance)
	}
}

func buildNode(node *ClosureNode) bxdf.BxDF {
	switch node.Kind {
	case CoatClosure:
		var base bxdf.BxDF = bxdf.NewLambertian(core.Spectrum{})
		if node.Child != nil {
			base = buildNode(node.Child)
			if cw := weightOf(node.Child); cw != 1 {
				base = weightedLobe{BxDF: base, weight: cw}
			}
		}
		return bxdf.NewCoat(base, node.EtaB, weightOf(node))
	case DoubleSidedClosure:
		var base bxdf.BxDF = bxdf.NewLambertian(core.Spectrum{})
		if node.Child != nil {
			base = buildNode(node.Child)
			if cw := weightOf(node.Child); cw != 1 {
				base = weightedLobe{BxDF: base, weight: cw}
			}
		}
		return bxdf.NewDoubleSided(base)
	case DistributionBRDFClosure:
		fr := bxdf.SchlickFresnel{R0: node.Reflectance}
		return bxdf.NewMicrofacetReflection(node.Reflectance, buildDistribution(node), fr)
	default:
		return buildLeaf(node)
	}
}

// weightedLobe scales a BxDF's contribution by weight without mutating
// the underlying lobe, by wrapping it — used when a closure tree's node
// carries a weight distinct from 1 (e.g. a 70% Lambert / 30% metal mix).
type weightedLobe struct {
	bxdf.BxDF
	weight float64
}

func (w weightedLobe) F(wo, wi core.Vec3) core.Spectrum { return w.BxDF.F(wo, wi).Multiply(w.weight) }

func (w weightedLobe) SampleF(wo core.Vec3, u core.Vec2) (core.Spectrum, core.Vec3, float64, bool) {
	f, wi, pdf, ok := w.BxDF.SampleF(wo, u)
	return f.Multiply(w.weight), wi, pdf, ok
}

// BuildBSDF walks a closure tree and adds one lobe per leaf (or composite
// wrapper) to a new BSDF, scaling each leaf's contribution by the product
// of weights along its path from the root.
func BuildBSDF(tree *ClosureNode, normal, tangent core.Vec3) *bxdf.BSDF {
	b := bxdf.NewBSDF(normal, tangent)
	if tree == nil {
		return b
	}
	addClosure(b, tree, 1)
	return b
}

func addClosure(b *bxdf.BSDF, node *ClosureNode, weight float64) {
	if node == nil {
		return
	}
	w := weight * weightOf(node)
	lobe := buildNode(node)
	if w != 1 {
		lobe = weightedLobe{BxDF: lobe, weight: w}
	}
	b.AddLobe(lobe)
}
