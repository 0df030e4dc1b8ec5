package vgg

// LayerKind discriminates the three layer types in the VGG-19 feature stack.
type LayerKind int

// Layer kinds, in the order they first appear in the stack.
const (
	Conv LayerKind = iota
	ReLU
	Pool
)

// String returns a human-readable name for the layer kind.
func (k LayerKind) String() string {
	switch k {
	case Conv:
		return "conv"
	case ReLU:
		return "relu"
	case Pool:
		return "pool"
	default:
		return "unknown"
	}
}

// Layer describes one position in the VGG-19 feature stack.
//
// Index is the 0-based position in the sequential stack; pretrained weight
// files name conv tensors after it (features.<Index>.weight). Name is the
// conventional layer name (conv4_2, pool5, ...) used by feature selections
// and style weight tables.
type Layer struct {
	Index int
	Name  string
	Kind  LayerKind
}

// NumLayers is the number of sequential layers in the feature stack.
const NumLayers = 37

// architecture is the VGG-19 feature stack in torchvision order: five conv
// blocks (2, 2, 4, 4, 4 convolutions) with a ReLU after every conv and a
// max-pool closing each block.
var architecture = [NumLayers]Layer{
	{0, "conv1_1", Conv},
	{1, "relu1_1", ReLU},
	{2, "conv1_2", Conv},
	{3, "relu1_2", ReLU},
	{4, "pool1", Pool},
	{5, "conv2_1", Conv},
	{6, "relu2_1", ReLU},
	{7, "conv2_2", Conv},
	{8, "relu2_2", ReLU},
	{9, "pool2", Pool},
	{10, "conv3_1", Conv},
	{11, "relu3_1", ReLU},
	{12, "conv3_2", Conv},
	{13, "relu3_2", ReLU},
	{14, "conv3_3", Conv},
	{15, "relu3_3", ReLU},
	{16, "conv3_4", Conv},
	{17, "relu3_4", ReLU},
	{18, "pool3", Pool},
	{19, "conv4_1", Conv},
	{20, "relu4_1", ReLU},
	{21, "conv4_2", Conv},
	{22, "relu4_2", ReLU},
	{23, "conv4_3", Conv},
	{24, "relu4_3", ReLU},
	{25, "conv4_4", Conv},
	{26, "relu4_4", ReLU},
	{27, "pool4", Pool},
	{28, "conv5_1", Conv},
	{29, "relu5_1", ReLU},
	{30, "conv5_2", Conv},
	{31, "relu5_2", ReLU},
	{32, "conv5_3", Conv},
	{33, "relu5_3", ReLU},
	{34, "conv5_4", Conv},
	{35, "relu5_4", ReLU},
	{36, "pool5", Pool},
}

// convShapes gives the {in, out} channel counts for each convolution,
// keyed by table index. The plan doubles the width after each of the first
// three blocks and holds at 512 from block four on.
var convShapes = map[int][2]int{
	0:  {3, 64},
	2:  {64, 64},
	5:  {64, 128},
	7:  {128, 128},
	10: {128, 256},
	12: {256, 256},
	14: {256, 256},
	16: {256, 256},
	19: {256, 512},
	21: {512, 512},
	23: {512, 512},
	25: {512, 512},
	28: {512, 512},
	30: {512, 512},
	32: {512, 512},
	34: {512, 512},
}

// Fixed geometry of the stack: every convolution is 3x3 stride 1 padding 1
// (spatial size preserved), every pool is 2x2 stride 2 (spatial size halved).
const (
	convKernel  = 3
	convStride  = 1
	convPadding = 1
	poolKernel  = 2
	poolStride  = 2
)

// Architecture returns a copy of the full 37-layer descriptor table.
func Architecture() []Layer {
	layers := make([]Layer, NumLayers)
	copy(layers, architecture[:])
	return layers
}
